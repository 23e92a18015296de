// Package logger builds the structured JSON logger shared by every component.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/banking-transfer-api/internal/config"
)

// NewLogger returns a JSON logger writing to stdout. Every record carries the
// application name and environment so the gateway and projector logs can be
// told apart once aggregated.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})
	logger := slog.New(handler).With(
		"app", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	logger.Info("logger initialized", "level", level.String())
	return logger
}

// ParseLevel maps a case-insensitive level name to a slog level, falling back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
