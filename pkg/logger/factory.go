package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config is read from the environment with caarlos0/env.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Sentry SentryConfig
}

// New returns an info-level JSON logger on stdout.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(jsonHandler(os.Stdout, slog.LevelInfo), extractors...))
}

// NewFromConfig returns a JSON logger on stdout at cfg.Level that also
// reports to Sentry when cfg.Sentry.DSN is set.
func NewFromConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	var h slog.Handler = jsonHandler(os.Stdout, cfg.Level)
	if cfg.Sentry.DSN != "" {
		h = withSentry(h, cfg.Sentry)
	}
	return slog.New(NewContextHandler(h, extractors...))
}

// NewNope returns a logger that drops every record.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
