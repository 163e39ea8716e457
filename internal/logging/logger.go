package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"pegel-crawler/internal/config"
)

const appName = "pegel-crawler"

// New returns the progress logger. Text output is meant for a terminal,
// json for log collectors.
func New(w io.Writer, cfg config.Config) *slog.Logger {
	if cfg.LogFormat == "json" {
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})
		return slog.New(h).With("app", appName)
	}

	h := tint.NewHandler(w, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.TimeOnly,
	})
	return slog.New(h).With("app", appName)
}

// Discard is used by tests and by callers that do not want diagnostics.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
