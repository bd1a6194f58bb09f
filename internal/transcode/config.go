package transcode

import (
	"fmt"
	"strings"

	"github.com/danmuck/modelcodec/internal/model"
)

// Config defines service defaults.
type Config struct {
	ID            string
	Addr          string
	CorsOrigins   []string
	DefaultFormat string
	Compress      bool
	MaxBodyBytes  int64
}

// DefaultConfig returns the defaults used when no config file overrides them.
func DefaultConfig() Config {
	return Config{
		ID:            "modelctl",
		Addr:          ":9200",
		CorsOrigins:   []string{"http://localhost:3000"},
		DefaultFormat: "json",
		Compress:      true,
		MaxBodyBytes:  4 << 20,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("transcode config missing id")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("transcode config missing addr")
	}
	if _, err := model.LookupFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("transcode config default_format: %w", err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("transcode config max_body_bytes must be positive")
	}
	return nil
}
