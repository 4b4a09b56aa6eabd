package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// SlogConfig describes the logger parameters.
type SlogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
}

// NewSlog builds a slog.Logger writing to stdout.
func NewSlog(cfg SlogConfig) *slog.Logger {
	return newSlog(cfg, os.Stdout)
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSlog(cfg SlogConfig, w io.Writer) *slog.Logger {
	var lvl slog.Level

	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var handler slog.Handler

	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		})
	}

	return slog.New(handler)
}
