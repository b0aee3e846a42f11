package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pool for cfg and pings it, so bad credentials fail at
// startup rather than on the first redirect. Attempts are retried with
// exponential backoff from cfg.RetryInterval and stop once ctx is done.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := cfg.poolConfig()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	open := func() (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}

	pool, err := retry.DoWithData(open,
		retry.Context(ctx),
		retry.Attempts(uint(max(cfg.RetryAttempts, 1))),
		retry.Delay(max(cfg.RetryInterval, time.Millisecond)),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WarnContext(ctx, "database connection attempt failed",
				slog.Uint64("attempt", uint64(n+1)),
				slog.String("host", poolCfg.ConnConfig.Host),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}
	return pool, nil
}

func (c Config) poolConfig() (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(c.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	pc.MaxConns = c.MaxOpenConns
	pc.MinConns = c.MinConns
	pc.HealthCheckPeriod = c.HealthCheckPeriod
	pc.MaxConnIdleTime = c.MaxConnIdleTime
	pc.MaxConnLifetime = c.MaxConnLifetime
	return pc, nil
}

// Healthcheck returns a readiness check that pings pool.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil {
			return ErrPing
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrPing, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes pool.
//
//	app.Run(addr, redirectll.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

// WithTx runs fn in a transaction that is committed when fn returns nil
// and rolled back otherwise.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	if err := pgx.BeginFunc(ctx, pool, fn); err != nil {
		return errors.Join(ErrTx, err)
	}
	return nil
}
