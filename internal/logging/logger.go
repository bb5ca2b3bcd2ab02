// Package logging configures structured logging with log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Setup returns a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// The logger is returned rather than installed as the slog default, so
// callers pass it explicitly to the packages that log.
func Setup(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Printf adapts logger to printf-style callbacks such as automaxprocs's.
func Printf(logger *slog.Logger) func(string, ...any) {
	return func(format string, args ...any) {
		logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
	}
}
