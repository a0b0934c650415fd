package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger: JSON records when LOG_FORMAT=json
// (what the log shipper ingests in production), human-readable text
// otherwise. Source locations are attached either way.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("app", "mostrador"))
}
