// Package logger provides structured logging utilities for hookbridge.
// It includes context-aware logging and log level management.
package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/hookbridge/hookbridge/internal/constants"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Initialize sets up the global slog logger based on the environment.
// Production emits JSON to stderr; development and CLI get a colored,
// human-oriented handler.
func Initialize(env constants.Environment, level slog.Level) *slog.Logger {
	var handler slog.Handler

	if env == constants.Production {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("logger initialized", "env", env, "level", level)

	return logger
}

// ParseLevel converts a textual log level into a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
