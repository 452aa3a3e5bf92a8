// Package logging builds the slog loggers the binaries install as the default.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a logger writing to stdout. level is one of debug, info, warn or error and
// format is json or text; anything else falls back to info and json.
func NewLogger(level, format string) *slog.Logger {
	return NewLoggerWithWriter(level, format, os.Stdout)
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a level name onto a slog level, case-insensitively.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Setup installs a logger as the process default and returns it.
func Setup(level, format string) *slog.Logger {
	logger := NewLogger(level, format)
	slog.SetDefault(logger)
	logger.Debug("configured logging", "level", ParseLevel(level).String(), "format", format)
	return logger
}
