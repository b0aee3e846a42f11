// Package redis connects the go-redis client that backs the shared lookup cache.
//
// [Config] is read from the environment with caarlos0/env (REDIS_URL,
// REDIS_POOL_SIZE, REDIS_READ_TIMEOUT, ...). [Connect] parses the URL,
// applies the pool settings and retries the initial ping with backoff:
//
//	client, err := redis.Connect(ctx, cfg.Redis, log)
//	if err != nil {
//		return err
//	}
//
//	app.Run(addr, redirectll.ShutdownHook(redis.Shutdown(client)))
//
// [Healthcheck] plugs into the readiness endpoint:
//
//	redirectll.WithReadinessCheck("redis", redis.Healthcheck(client))
package redis
