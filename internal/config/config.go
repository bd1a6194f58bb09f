package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/modelcodec/internal/logging"
	"github.com/danmuck/modelcodec/internal/transcode"
	"github.com/pelletier/go-toml/v2"
)

// ServerConfig is the on-disk shape of the modelctl server config.
type ServerConfig struct {
	ID            string   `toml:"id"`
	Addr          string   `toml:"addr"`
	CorsOrigins   []string `toml:"cors_origins"`
	DefaultFormat string   `toml:"default_format"`
	Compress      bool     `toml:"compress"`
	MaxBodyBytes  int64    `toml:"max_body_bytes"`
	LogLevel      string   `toml:"log_level"`
}

// DefaultServerConfig mirrors transcode.DefaultConfig. Keys missing from a
// file keep these values.
func DefaultServerConfig() ServerConfig {
	d := transcode.DefaultConfig()
	return ServerConfig{
		ID:            d.ID,
		Addr:          d.Addr,
		CorsOrigins:   append([]string(nil), d.CorsOrigins...),
		DefaultFormat: d.DefaultFormat,
		Compress:      d.Compress,
		MaxBodyBytes:  d.MaxBodyBytes,
	}
}

// Transcode returns the service settings carried by c.
func (c ServerConfig) Transcode() transcode.Config {
	return transcode.Config{
		ID:            c.ID,
		Addr:          c.Addr,
		CorsOrigins:   append([]string(nil), c.CorsOrigins...),
		DefaultFormat: c.DefaultFormat,
		Compress:      c.Compress,
		MaxBodyBytes:  c.MaxBodyBytes,
	}
}

// LoadServerConfig overlays a config file onto DefaultServerConfig and
// validates the result. Unknown keys are rejected.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

// ValidateServerConfig is the single validation rule set for server configs,
// whichever loader produced them.
func ValidateServerConfig(cfg ServerConfig) error {
	if err := cfg.Transcode().Validate(); err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("server config log_level: unknown level %q", cfg.LogLevel)
		}
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("server config cors_origins[%d] is empty", i)
		}
	}
	return nil
}
