// Package logger owns the process wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/agora-dev/agora/internal/config"
)

// AppName is attached to every record so forum logs can be told apart in shared sinks.
const AppName = "agora"

var Log *slog.Logger

func init() {
	// Tools and tests log text at info until Setup runs
	Log = New(os.Stdout, "info", false)
}

// Setup replaces the global logger with one built from the public config.
func Setup(cfg config.Public) {
	Log = New(os.Stdout, cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(Log)
}

// New builds a logger writing to w. An empty or unknown level means info.
func New(w io.Writer, level string, useJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if useJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", AppName))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
