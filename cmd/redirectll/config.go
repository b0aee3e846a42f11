package main

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/archlinux/redirectll/pkg/db"
	"github.com/archlinux/redirectll/pkg/legacy"
	"github.com/archlinux/redirectll/pkg/logger"
	"github.com/archlinux/redirectll/pkg/redis"
	"github.com/archlinux/redirectll/pkg/upstream"
)

var errConfig = errors.New("redirectll: invalid configuration")

type httpConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	HealthTimeout   time.Duration `env:"HTTP_HEALTH_TIMEOUT" envDefault:"3s"`
}

type cacheConfig struct {
	// An empty REDIS_URL selects the in-process store.
	Redis       redis.Config
	RedisPrefix string        `env:"CACHE_REDIS_PREFIX" envDefault:"redirectll"`
	TTL         time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	NotFoundTTL time.Duration `env:"CACHE_NOT_FOUND_TTL" envDefault:"5m"`
	MaxEntries  int           `env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
	LoadTimeout time.Duration `env:"CACHE_LOAD_TIMEOUT" envDefault:"5s"`
}

type forumConfig struct {
	// Empty keeps Location headers relative.
	BaseURL     string `env:"FORUM_BASE_URL"`
	TablePrefix string `env:"FORUM_TABLE_PREFIX"`
}

type legacyConfig struct {
	DoubleDecode   bool                  `env:"LEGACY_DOUBLE_DECODE" envDefault:"true"`
	NotFoundPolicy legacy.NotFoundPolicy `env:"LEGACY_NOT_FOUND_POLICY" envDefault:"strict"`
}

type migrateConfig struct {
	Log logger.Config
	DB  db.Config
}

type resolveConfig struct {
	Log    logger.Config
	DB     db.Config
	Forum  forumConfig
	Legacy legacyConfig
}

type serveConfig struct {
	HTTP     httpConfig
	Log      logger.Config
	DB       db.Config
	Cache    cacheConfig
	Forum    forumConfig
	Legacy   legacyConfig
	Upstream upstream.Config
}

// loadConfig parses T from the process environment, or from opts.Environment when set.
func loadConfig[T any](opts env.Options) (T, error) {
	cfg, err := env.ParseAsWithOptions[T](opts)
	if err != nil {
		return cfg, errors.Join(errConfig, err)
	}
	return cfg, nil
}
