package main

import (
	"context"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/archlinux/redirectll"
	"github.com/archlinux/redirectll/middlewares"
	"github.com/archlinux/redirectll/pkg/db"
	"github.com/archlinux/redirectll/pkg/forum/cache"
	"github.com/archlinux/redirectll/pkg/forum/postgres"
	"github.com/archlinux/redirectll/pkg/logger"
	"github.com/archlinux/redirectll/pkg/redis"
	"github.com/archlinux/redirectll/pkg/upstream"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Serve redirects legacy forum URLs and proxies every other request to
FORUM_UPSTREAM_URL. Lookups go to the forum database (DATABASE_CONN_URL) and
are cached in Redis when REDIS_URL is set, in process memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig[serveConfig](env.Options{})
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg serveConfig) error {
	log := logger.NewFromConfig(cfg.Log, middlewares.RequestIDExtractor())
	defer func() {
		_ = logger.Flush(context.Background())
	}()

	pool, err := db.Connect(ctx, cfg.DB, log)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", slog.Any("error", err))
		return err
	}

	checks := []redirectll.HealthOption{
		redirectll.WithReadinessCheck("postgres", db.Healthcheck(pool)),
	}
	runOpts := []redirectll.RunOption{
		redirectll.Logger(log),
		redirectll.WithContext(ctx),
		redirectll.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		redirectll.OnListen(func(addr string) {
			log.InfoContext(ctx, "listening", slog.String("addr", addr), slog.String("version", version))
		}),
		redirectll.ShutdownHook(db.Shutdown(pool)),
	}

	var store cache.Store
	if cfg.Cache.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Cache.Redis, log)
		if err != nil {
			pool.Close()
			log.ErrorContext(ctx, "redis connection failed", slog.Any("error", err))
			return err
		}
		store = cache.NewRedisStore(client, cfg.Cache.RedisPrefix)
		checks = append(checks, redirectll.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, redirectll.ShutdownHook(redis.Shutdown(client)))
	} else {
		mem := cache.NewMemoryStore(cache.WithMaxEntries(cfg.Cache.MaxEntries))
		store = mem
		runOpts = append(runOpts, redirectll.ShutdownHook(func(context.Context) error {
			return mem.Close()
		}))
	}

	app, err := newApp(cfg, pool, store, log, checks...)
	if err != nil {
		pool.Close()
		_ = store.Close()
		return err
	}

	if err := app.Run(cfg.HTTP.Addr, runOpts...); err != nil {
		log.ErrorContext(ctx, "server stopped", slog.Any("error", err))
		return err
	}
	return nil
}

func newApp(cfg serveConfig, q postgres.Querier, store cache.Store, log *slog.Logger, checks ...redirectll.HealthOption) (*redirectll.App, error) {
	lookups, err := newLookups(q, cfg.Forum)
	if err != nil {
		return nil, err
	}
	if lookups, err = cachedLookups(lookups, store, cfg.Cache, log); err != nil {
		return nil, err
	}
	redirector, err := newRedirector(lookups, cfg.Forum, cfg.Legacy)
	if err != nil {
		return nil, err
	}
	proxy, err := upstream.NewProxyFromConfig(cfg.Upstream, upstream.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return redirectll.New(
		redirectll.WithCustomLogger(log),
		redirectll.WithErrorHandler(middlewares.ErrorHandler()),
		redirectll.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.HTTP.RequestTimeout),
			middlewares.LegacyRedirect(redirector),
		),
		redirectll.WithHealthChecks(append(checks, redirectll.WithCheckTimeout(cfg.HTTP.HealthTimeout))...),
		redirectll.WithHandlers(upstream.NewHandler(proxy)),
	), nil
}
