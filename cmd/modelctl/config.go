package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/modelcodec/internal/config"
	"github.com/danmuck/modelcodec/internal/logging"
	"github.com/danmuck/modelcodec/internal/transcode"
	"github.com/rs/zerolog"
)

type serveConfig struct {
	Transcode transcode.Config
	LogLevel  zerolog.Level
	HasLevel  bool
}

// loadServeConfig overlays the keys present in path onto the server
// defaults and applies the same validation as configgen. An empty path
// yields the defaults.
func loadServeConfig(path string) (serveConfig, error) {
	raw := config.DefaultServerConfig()
	if strings.TrimSpace(path) != "" {
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return serveConfig{}, fmt.Errorf("load modelctl config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return serveConfig{}, fmt.Errorf("load modelctl config: unknown key %q", undecoded[0].String())
		}
	}
	if err := config.ValidateServerConfig(raw); err != nil {
		return serveConfig{}, err
	}

	cfg := serveConfig{Transcode: raw.Transcode()}
	if raw.LogLevel != "" {
		lvl, _ := logging.ParseLevel(raw.LogLevel)
		cfg.LogLevel = lvl
		cfg.HasLevel = true
	}
	return cfg, nil
}
