package main

import (
	"log/slog"

	"github.com/archlinux/redirectll/pkg/forum"
	"github.com/archlinux/redirectll/pkg/forum/cache"
	"github.com/archlinux/redirectll/pkg/forum/postgres"
	"github.com/archlinux/redirectll/pkg/legacy"
)

func newLookups(db postgres.Querier, cfg forumConfig) (legacy.Lookups, error) {
	opts := []postgres.Option{postgres.WithTablePrefix(cfg.TablePrefix)}

	discussions, err := postgres.NewDiscussionLookup(db, opts...)
	if err != nil {
		return legacy.Lookups{}, err
	}
	users, err := postgres.NewUserLookup(db, opts...)
	if err != nil {
		return legacy.Lookups{}, err
	}
	tags, err := postgres.NewTagLookup(db, opts...)
	if err != nil {
		return legacy.Lookups{}, err
	}
	return legacy.Lookups{Discussions: discussions, Users: users, Tags: tags}, nil
}

func cachedLookups(l legacy.Lookups, store cache.Store, cfg cacheConfig, log *slog.Logger) (legacy.Lookups, error) {
	wrap := func(next forum.Lookup) (forum.Lookup, error) {
		return cache.New(next, store,
			cache.WithTTL(cfg.TTL),
			cache.WithNotFoundTTL(cfg.NotFoundTTL),
			cache.WithLoadTimeout(cfg.LoadTimeout),
			cache.WithLogger(log),
		)
	}

	var err error
	if l.Discussions, err = wrap(l.Discussions); err != nil {
		return legacy.Lookups{}, err
	}
	if l.Users, err = wrap(l.Users); err != nil {
		return legacy.Lookups{}, err
	}
	if l.Tags, err = wrap(l.Tags); err != nil {
		return legacy.Lookups{}, err
	}
	return l, nil
}

func newRedirector(l legacy.Lookups, fc forumConfig, lc legacyConfig) (*legacy.Redirector, error) {
	var opts []forum.RoutesOption
	if fc.BaseURL != "" {
		opts = append(opts, forum.WithBaseURL(fc.BaseURL))
	}
	routes, err := forum.NewRoutes(opts...)
	if err != nil {
		return nil, err
	}
	return legacy.New(l, routes,
		legacy.WithDoubleDecode(lc.DoubleDecode),
		legacy.WithNotFoundPolicy(lc.NotFoundPolicy),
	)
}
