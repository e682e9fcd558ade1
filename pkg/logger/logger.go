package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "local-avatar-api"

// New creates a zerolog logger on stdout for the given level name and
// environment. "development" gets pretty console output, anything else JSON.
func New(level, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, env)
}

// NewWithWriter is New with a caller-chosen output, e.g. stderr for CLI
// tools whose stdout carries results.
func NewWithWriter(out io.Writer, level, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName)
	if env == "development" {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// FromEnv builds a logger from LOG_LEVEL and ENV, for tools that run before
// the full configuration is loaded.
func FromEnv() zerolog.Logger {
	return New(os.Getenv("LOG_LEVEL"), os.Getenv("ENV"))
}

// ParseLevel maps a level name onto a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
