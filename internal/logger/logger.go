// internal/logger/logger.go
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the shared structured logger.
var Logger *slog.Logger

func init() {
	Logger = New(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(Logger)
}

// New builds a text logger writing to stderr at the given level
// (debug|info|warn|error, info when empty or unknown).
func New(level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ParseLevel maps a LOG_LEVEL value onto a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger scoped to a component name.
func With(component string) *slog.Logger {
	return Logger.With("component", component)
}
