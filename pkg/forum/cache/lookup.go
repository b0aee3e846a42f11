package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/archlinux/redirectll/pkg/forum"
)

// Option configures a caching Lookup.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	ttl         time.Duration
	notFoundTTL time.Duration
	loadTimeout time.Duration
}

// WithTTL sets how long resolved entities are kept.
// Default: 1 hour.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// WithNotFoundTTL sets how long a not-found answer is kept. Zero disables
// negative caching.
// Default: 5 minutes.
func WithNotFoundTTL(d time.Duration) Option {
	return func(o *options) {
		o.notFoundTTL = d
	}
}

// WithLoadTimeout bounds a call to the backing lookup. The call is shared by
// every caller waiting on the same id, so it does not end with any one
// caller's context.
// Default: 5 seconds.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithLogger sets the logger store failures are reported on.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// Lookup decorates a forum.Lookup with a Store. Concurrent misses on the
// same id share one call to the backing lookup.
type Lookup struct {
	next  forum.Lookup
	store Store
	group singleflight.Group
	opts  options
}

// New wraps next with store.
func New(next forum.Lookup, store Store, opts ...Option) (*Lookup, error) {
	if next == nil {
		return nil, ErrNilLookup
	}
	if store == nil {
		return nil, ErrNilStore
	}
	o := options{
		logger:      slog.New(slog.DiscardHandler),
		ttl:         time.Hour,
		notFoundTTL: 5 * time.Minute,
		loadTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Lookup{next: next, store: store, opts: o}, nil
}

// Kind returns the kind of the backing lookup.
func (l *Lookup) Kind() forum.Kind {
	return l.next.Kind()
}

// Lookup serves id from the store, falling back to the backing lookup on a
// miss. Store failures are logged and treated as misses. A caller whose ctx
// ends stops waiting without affecting the others sharing the load.
func (l *Lookup) Lookup(ctx context.Context, id int64) (forum.Entity, error) {
	key := l.key(id)

	rec, err := l.store.Get(ctx, key)
	switch {
	case err == nil:
		return l.answer(rec, id)
	case !errors.Is(err, ErrMiss):
		l.opts.logger.WarnContext(ctx, "lookup cache read failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(shared, l.opts.loadTimeout)
		defer cancel()
		return l.load(loadCtx, key, id)
	})

	select {
	case <-ctx.Done():
		return forum.Entity{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return forum.Entity{}, res.Err
		}
		return l.answer(res.Val.(Record), id)
	}
}

func (l *Lookup) load(ctx context.Context, key string, id int64) (Record, error) {
	e, err := l.next.Lookup(ctx, id)
	var (
		rec Record
		ttl time.Duration
	)
	switch {
	case err == nil:
		rec, ttl = Record{Entity: e}, l.opts.ttl
	case errors.Is(err, forum.ErrNotFound):
		rec, ttl = Record{Missing: true}, l.opts.notFoundTTL
	default:
		return Record{}, err
	}

	if err := l.store.Set(ctx, key, rec, ttl); err != nil {
		l.opts.logger.WarnContext(ctx, "lookup cache write failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
	return rec, nil
}

func (l *Lookup) answer(rec Record, id int64) (forum.Entity, error) {
	if rec.Missing {
		return forum.Entity{}, fmt.Errorf("%s %d: %w", l.next.Kind(), id, forum.ErrNotFound)
	}
	return rec.Entity, nil
}

func (l *Lookup) key(id int64) string {
	return string(l.next.Kind()) + ":" + strconv.FormatInt(id, 10)
}

var _ forum.Lookup = (*Lookup)(nil)
