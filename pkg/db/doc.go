// Package db provides the PostgreSQL plumbing redirectll reads forum data through.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with environment-driven pool
// configuration, startup retry, a readiness check and goose migrations.
//
// # Configuration
//
// [Config] is populated from environment variables:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry delay (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: redirectll_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// Retries are driven by [github.com/avast/retry-go/v4] with exponential
// backoff and stop as soon as ctx is done.
//
// # Health Checks
//
// [Healthcheck] returns a closure suitable for the readiness endpoint:
//
//	redirectll.WithHealthChecks(
//		redirectll.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
//
// # Migrations
//
// [Migrate] applies SQL files from any [io/fs.FS], typically an embedded one:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	sub, _ := fs.Sub(migrations, "migrations")
//	version, err := db.Migrate(ctx, pool, sub, cfg.MigrationsTable, log)
//
// # Errors
//
// Sentinels are joined with the cause via [errors.Join], so callers test
// them with errors.Is: [ErrInvalidConfig], [ErrConnect], [ErrPing], [ErrTx],
// [ErrDialect], [ErrMigrate] and [ErrMigrationStatus].
package db
