package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// Lowest level kept as a Sentry log: warn or error. Only errors open issues.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// NewWithSentry is NewFromConfig at info level.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	return NewFromConfig(Config{Level: slog.LevelInfo, Sentry: cfg}, extractors...)
}

// withSentry adds a Sentry destination next to stdout. When the SDK cannot
// start, the failure is logged to stdout and stdout alone is used.
func withSentry(stdout slog.Handler, cfg SentryConfig) slog.Handler {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(stdout).Error("sentry disabled", slog.String("error", err.Error()))
		return stdout
	}

	return fanout{stdout, sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())}
}

func sentryLogLevels(floor slog.Level) []slog.Level {
	if floor >= slog.LevelError {
		return []slog.Level{slog.LevelError}
	}
	return []slog.Level{slog.LevelWarn, slog.LevelError}
}

// Flush blocks until buffered Sentry events are sent, up to ctx's deadline
// or two seconds without one. Without Sentry it returns at once.
func Flush(ctx context.Context) error {
	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	sentry.Flush(timeout)
	return nil
}
