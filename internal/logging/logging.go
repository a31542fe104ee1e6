package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates and sets the package-level default slog logger on stderr.
// When structured is true it uses a JSONHandler, which `serve` picks so logs
// stay machine-readable next to MCP traffic. Otherwise it uses a TextHandler.
func Init(structured bool, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, structured, level)))
}

// NewHandler returns the handler Init installs, writing to w.
func NewHandler(w io.Writer, structured bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if structured {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
