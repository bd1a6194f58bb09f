package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceLogger derives a logger tagged with app from the global logger set
// up by the logging package.
func ServiceLogger(app string) zerolog.Logger {
	return log.Logger.With().Str("app", app).Logger()
}
