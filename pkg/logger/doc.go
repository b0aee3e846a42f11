// Package logger builds the service's slog loggers.
//
// Records are written as JSON to stdout. A ContextHandler runs
// ContextExtractors on every record so request-scoped values such as the
// request ID appear without being passed explicitly:
//
//	log := logger.NewFromConfig(cfg, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "legacy redirect", slog.Int("status", 301))
//	// {"level":"INFO","msg":"legacy redirect","status":301,"request_id":"0190..."}
//
// # Configuration
//
// Config is read from the environment:
//
//	LOG_LEVEL           debug | info | warn | error (default info)
//	SENTRY_DSN          enables Sentry when set
//	SENTRY_ENVIRONMENT  default "production"
//	SENTRY_MIN_LEVEL    warn | error (default warn)
//
// With a DSN, error records create Sentry issues and warnings are kept as
// Sentry logs. If the SDK fails to initialize, logging continues to stdout.
// Call Flush before exit so buffered events are delivered.
//
// NewNope returns a logger that discards everything. Library code defaults
// to it when no logger is configured.
package logger
