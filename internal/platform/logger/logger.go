// Package logger provides structured logging functionality for the application.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/taskdesk-api/internal/config"
)

type contextKey string

const loggerKey contextKey = "logger"

// Setup initializes the application's logging system based on the provided
// configuration. It creates a structured JSON logger writing to stdout and sets
// it as the default slog logger.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger := New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger, nil
}

// New builds a JSON logger writing to w at the given level.
// Unknown levels fall back to info with a warning.
func New(w io.Writer, levelName string) *slog.Logger {
	level, ok := ParseLevel(levelName)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}
	return logger
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// The second result is false when the name is not recognized.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or nil when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// slog.Default().
func FromContextOrDefault(ctx context.Context) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	return slog.Default()
}
