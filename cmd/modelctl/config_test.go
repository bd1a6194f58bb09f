package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/modelcodec/internal/config"
	"github.com/danmuck/modelcodec/internal/transcode"
	"github.com/rs/zerolog"
)

func TestLoadServeConfigDefaultsAndOverrides(t *testing.T) {
	cfg, err := loadServeConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Transcode.ID != "modelctl.local" {
		t.Fatalf("unexpected id: %q", cfg.Transcode.ID)
	}
	if cfg.Transcode.Addr != "127.0.0.1:9200" {
		t.Fatalf("unexpected addr: %q", cfg.Transcode.Addr)
	}
	if len(cfg.Transcode.CorsOrigins) != 2 {
		t.Fatalf("unexpected cors origins: %+v", cfg.Transcode.CorsOrigins)
	}
	if cfg.Transcode.DefaultFormat != "literal" {
		t.Fatalf("unexpected default format: %q", cfg.Transcode.DefaultFormat)
	}
	if cfg.Transcode.Compress {
		t.Fatalf("expected compression disabled")
	}
	if cfg.Transcode.MaxBodyBytes != 65536 {
		t.Fatalf("unexpected max body bytes: %d", cfg.Transcode.MaxBodyBytes)
	}
	if !cfg.HasLevel || cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("unexpected log level: %v (set=%v)", cfg.LogLevel, cfg.HasLevel)
	}
}

func TestLoadServeConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadServeConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := transcode.DefaultConfig()
	if cfg.Transcode.ID != def.ID || cfg.Transcode.Addr != def.Addr {
		t.Fatalf("unexpected config: %+v", cfg.Transcode)
	}
	if cfg.HasLevel {
		t.Fatalf("expected no log level override")
	}
}

func TestLoadServeConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("addr = \":9999\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadServeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Transcode.Addr != ":9999" {
		t.Fatalf("unexpected addr: %q", cfg.Transcode.Addr)
	}
	if cfg.Transcode.DefaultFormat != "json" || !cfg.Transcode.Compress {
		t.Fatalf("expected defaults to survive: %+v", cfg.Transcode)
	}
}

func TestLoadServeConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"format": "default_format = \"yaml\"\n",
		"level":  "log_level = \"loud\"\n",
		"body":   "max_body_bytes = 0\n",
		"syntax": "addr = \n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := loadServeConfig(path); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestServeAndConfiggenLoadersAgree(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.toml")
	if err := config.WriteTemplate(template, "server", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	files := map[string]string{
		"template":    template,
		"example":     "ex.config.toml",
		"no_compress": "addr = \":9300\"\nlog_level = \"warn\"\n",
		"zero_body":   "max_body_bytes = 0\n",
		"unknown_key": "listen = \":1\"\n",
	}
	for name, src := range files {
		path := src
		if name != "template" && name != "example" {
			path = filepath.Join(dir, name+".toml")
			if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
		}

		serve, serveErr := loadServeConfig(path)
		gen, genErr := config.LoadServerConfig(path)
		if (serveErr == nil) != (genErr == nil) {
			t.Fatalf("%s: loaders disagree: serve err=%v configgen err=%v", name, serveErr, genErr)
		}
		if serveErr != nil {
			continue
		}
		if !reflect.DeepEqual(serve.Transcode, gen.Transcode()) {
			t.Fatalf("%s: loaders disagree:\n serve=%+v\n  conf=%+v", name, serve.Transcode, gen.Transcode())
		}
		if serve.HasLevel != (gen.LogLevel != "") {
			t.Fatalf("%s: log level disagreement: serve=%v configgen=%q", name, serve.HasLevel, gen.LogLevel)
		}
	}

	cfg, err := loadServeConfig(filepath.Join(dir, "no_compress.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Transcode.Compress || cfg.Transcode.MaxBodyBytes != transcode.DefaultConfig().MaxBodyBytes {
		t.Fatalf("missing keys should keep service defaults: %+v", cfg.Transcode)
	}
	if _, err := loadServeConfig(filepath.Join(dir, "zero_body.toml")); err == nil {
		t.Fatalf("expected zero max_body_bytes to be rejected")
	}
}
