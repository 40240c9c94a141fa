package driver

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultLogLevel is used when neither flags, environment nor manifest set one.
const DefaultLogLevel = slog.LevelWarn

// ParseLogLevel accepts debug, info, warn or error, case-insensitively.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return DefaultLogLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLogLevel, fmt.Errorf("unknown log level '%s' (expected debug, info, warn or error)", value)
	}
}

// NewLogger builds the text logger shared by the driver and interpreter.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
