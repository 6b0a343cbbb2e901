// Package logging builds the structured logger used by the interactive viewer. Output goes to the file named by
// TEXTDIFF_LOG_FILE so it never mixes with the terminal UI; without it every record is discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvFile  = "TEXTDIFF_LOG_FILE"
	EnvLevel = "TEXTDIFF_LOG_LEVEL"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FromEnv opens the log file named by TEXTDIFF_LOG_FILE and returns a JSON logger writing to it, along with a
// function closing the file. The close function is never nil.
func FromEnv() (*slog.Logger, func() error, error) {
	path := strings.TrimSpace(os.Getenv(EnvFile))
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}

	level, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel accepts debug, info, warn (or warning) and error, case-insensitively. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid %s %q", EnvLevel, s)
}
