// Package log provides structured logging utilities.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel is the environment variable consulted when no level is given.
const EnvLevel = "SEMREL_LOG_LEVEL"

// Config captures options for configuring a logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Console bool      // human readable output instead of JSON lines
}

// New creates a logger from the given configuration.
func New(cfg Config) zerolog.Logger {
	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	if cfg.Console {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(writer).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel resolves the log level. An empty level falls back to the
// environment and finally to warn, so commands stay quiet by default.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		return zerolog.WarnLevel
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.WarnLevel
	}
	return parsed
}
