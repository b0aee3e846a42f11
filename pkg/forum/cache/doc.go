// Package cache keeps resolved forum entities close to the redirector.
//
// [Lookup] decorates any [forum.Lookup]. Hits are served from a [Store];
// misses go to the backing lookup once per id, however many requests ask
// for it at the same time (golang.org/x/sync/singleflight). That call is
// bounded by [WithLoadTimeout] rather than by the first caller's context, and
// a caller that gives up stops waiting on its own. Not-found
// answers are cached too, for a shorter time, so crawlers replaying dead
// legacy links do not reach the database on every request.
//
// Two stores are provided:
//
//   - [MemoryStore]: process-local LRU with per-record expiry and a
//     background sweeper.
//   - [RedisStore]: JSON records in Redis, shared across instances.
//
// Example:
//
//	store := cache.NewMemoryStore(cache.WithMaxEntries(10000))
//	defer store.Close()
//
//	discussions, err := cache.New(pgDiscussions, store,
//	    cache.WithTTL(time.Hour),
//	    cache.WithNotFoundTTL(5*time.Minute),
//	)
//
// Store errors never fail a lookup; they are logged and the backing lookup
// answers instead. Errors from the backing lookup other than not-found are
// returned and never cached.
package cache
