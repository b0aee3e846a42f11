package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client for cfg.URL and pings it. Failed pings are retried
// with exponential backoff from cfg.RetryInterval until cfg.RetryAttempts is
// used up or ctx ends; each retry is logged at warn level.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*redis.Client, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	client, err := retry.DoWithData(
		func() (*redis.Client, error) {
			client := redis.NewClient(opts)
			if err := client.Ping(ctx).Err(); err != nil {
				_ = client.Close()
				return nil, err
			}
			return client, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(max(cfg.RetryAttempts, 1))),
		retry.Delay(max(cfg.RetryInterval, time.Millisecond)),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WarnContext(ctx, "redis connection attempt failed",
				slog.Uint64("attempt", uint64(n+1)),
				slog.String("addr", opts.Addr),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return nil, errors.Join(ErrUnreachable, err)
	}
	return client, nil
}

// clientOptions parses cfg.URL and applies the pool settings. Zero values
// keep the go-redis defaults.
func clientOptions(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	setIfPositive(&opts.PoolSize, cfg.PoolSize)
	setIfPositive(&opts.MinIdleConns, cfg.MinIdleConns)
	setIfPositive(&opts.ConnMaxIdleTime, cfg.MaxIdleTime)
	setIfPositive(&opts.ConnMaxLifetime, cfg.MaxLifetime)
	setIfPositive(&opts.DialTimeout, cfg.DialTimeout)
	setIfPositive(&opts.ReadTimeout, cfg.ReadTimeout)
	setIfPositive(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func setIfPositive[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrNotResponding
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrNotResponding, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
