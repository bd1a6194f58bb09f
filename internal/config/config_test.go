package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/modelcodec/internal/model"
	"github.com/danmuck/modelcodec/internal/transcode"
)

func TestTemplateRoundTripsThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, "server", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "modelctl" || cfg.Addr != ":9200" {
		t.Fatalf("unexpected identity: %+v", cfg)
	}
	if cfg.DefaultFormat != "json" || !cfg.Compress || cfg.MaxBodyBytes != 4194304 {
		t.Fatalf("unexpected codec settings: %+v", cfg)
	}
	if err := WriteTemplate(path, "server", false); err == nil {
		t.Fatalf("expected existing config to be protected")
	}
	if err := WriteTemplate(path, "server", true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("compress = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "modelctl" || cfg.Addr != ":9200" || cfg.DefaultFormat != "json" || cfg.MaxBodyBytes != 4<<20 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Compress {
		t.Fatalf("expected compress disabled")
	}
}

func TestLoadServerConfigMissingKeysKeepServiceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("addr = \":9999\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := transcode.DefaultConfig()
	want.Addr = ":9999"
	if !reflect.DeepEqual(cfg.Transcode(), want) {
		t.Fatalf("unexpected transcode config: got=%+v want=%+v", cfg.Transcode(), want)
	}
}

func TestLoadServerConfigRejectsZeroBodyAndUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"zero_body":  "max_body_bytes = 0\n",
		"blank_cors": "cors_origins = [\" \"]\n",
		"unknown":    "listen = \":1\"\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadServerConfig(path); err == nil {
			t.Fatalf("%s: expected error for %q", name, body)
		}
	}
}

func TestLoadServerConfigRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_format = \"yaml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadServerConfig(path); !errors.Is(err, model.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadServerConfigRejectsBadLevelAndSyntax(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "level.toml")
	if err := os.WriteFile(bad, []byte("log_level = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadServerConfig(bad); err == nil {
		t.Fatalf("expected log level error")
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("addr = \n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadServerConfig(broken); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadServerConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestTemplateUnknownKind(t *testing.T) {
	if _, err := Template("widget"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
