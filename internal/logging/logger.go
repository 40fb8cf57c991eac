// Package logging wires zerolog as the process logger and carries a
// request-scoped logger through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Development gets a console
// writer; every other environment logs JSON to stdout.
func Setup(level, env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return SetupWithWriter(level, out)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(level string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(level))

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return log.Logger
}

// ParseLevel maps LOG_LEVEL values onto zerolog levels, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger provides structured logging for services
type Logger struct {
	zl *zerolog.Logger
}

// FromContext returns the request-scoped logger stored by the request ID
// middleware, or the global logger when there is none.
func FromContext(ctx context.Context) *Logger {
	zl := zerolog.Ctx(ctx)
	if zl == nil || zl.GetLevel() == zerolog.Disabled {
		zl = &log.Logger
	}
	return &Logger{zl: zl}
}

// Zerolog exposes the underlying logger for callers that need raw events.
func (l *Logger) Zerolog() *zerolog.Logger {
	return l.zl
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.zl.Error().Str("operation", operation).Err(err).Send()
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	l.zl.Info().Str("operation", operation).Msg(message)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.zl.Info().Str("operation", operation).Msgf(format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.zl.Warn().Str("operation", operation).Msgf(format, args...)
}
