package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
)

// NewLogger creates a structured zerolog.Logger writing to stdout with the
// service name from the config. Unknown levels fall back to info.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.VercelTeamID != "" {
		ctx = ctx.Str("team", cfg.VercelTeamID)
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
