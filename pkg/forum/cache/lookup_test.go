package cache_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlinux/redirectll/pkg/forum"
	"github.com/archlinux/redirectll/pkg/forum/cache"
)

type countingLookup struct {
	next  forum.Lookup
	err   error
	delay time.Duration
	calls atomic.Int64
}

func (c *countingLookup) Kind() forum.Kind { return c.next.Kind() }

func (c *countingLookup) Lookup(ctx context.Context, id int64) (forum.Entity, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return forum.Entity{}, c.err
	}
	return c.next.Lookup(ctx, id)
}

// slowLookup blocks until ctx ends.
type slowLookup struct{}

func (slowLookup) Kind() forum.Kind { return forum.KindDiscussion }

func (slowLookup) Lookup(ctx context.Context, _ int64) (forum.Entity, error) {
	<-ctx.Done()
	return forum.Entity{}, ctx.Err()
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (cache.Record, error) {
	return cache.Record{}, errors.New("connection reset")
}

func (brokenStore) Set(context.Context, string, cache.Record, time.Duration) error {
	return errors.New("connection reset")
}

func (brokenStore) Close() error { return nil }

func newDiscussions() *countingLookup {
	return &countingLookup{next: forum.NewStaticLookup(forum.KindDiscussion,
		forum.Entity{ID: 123, Slug: "123-hello-world", LastPostNumber: 42},
	)}
}

func TestLookup_CachesHits(t *testing.T) {
	t.Parallel()

	backing := newDiscussions()
	store := cache.NewMemoryStore()
	defer store.Close()

	l, err := cache.New(backing, store)
	require.NoError(t, err)
	assert.Equal(t, forum.KindDiscussion, l.Kind())

	ctx := context.Background()
	for range 3 {
		e, err := l.Lookup(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, "123-hello-world", e.Slug)
		assert.Equal(t, 42, e.LastPostNumber)
	}
	assert.Equal(t, int64(1), backing.calls.Load())

	rec, err := store.Get(ctx, "discussion:123")
	require.NoError(t, err)
	assert.False(t, rec.Missing)
}

func TestLookup_CachesNotFound(t *testing.T) {
	t.Parallel()

	t.Run("negative entries are cached", func(t *testing.T) {
		t.Parallel()

		backing := newDiscussions()
		store := cache.NewMemoryStore()
		defer store.Close()

		l, err := cache.New(backing, store)
		require.NoError(t, err)

		for range 3 {
			_, err := l.Lookup(context.Background(), 999)
			require.ErrorIs(t, err, forum.ErrNotFound)
		}
		assert.Equal(t, int64(1), backing.calls.Load())
	})

	t.Run("zero not-found ttl disables negative caching", func(t *testing.T) {
		t.Parallel()

		backing := newDiscussions()
		store := cache.NewMemoryStore()
		defer store.Close()

		l, err := cache.New(backing, store, cache.WithNotFoundTTL(0))
		require.NoError(t, err)

		for range 3 {
			_, err := l.Lookup(context.Background(), 999)
			require.ErrorIs(t, err, forum.ErrNotFound)
		}
		assert.Equal(t, int64(3), backing.calls.Load())
	})
}

func TestLookup_BackingErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("database is down")
	backing := newDiscussions()
	backing.err = dbErr
	store := cache.NewMemoryStore()
	defer store.Close()

	l, err := cache.New(backing, store)
	require.NoError(t, err)

	for range 2 {
		_, err := l.Lookup(context.Background(), 123)
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, forum.ErrNotFound)
	}
	assert.Equal(t, int64(2), backing.calls.Load())
	assert.Zero(t, store.Len())
}

func TestLookup_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	backing := newDiscussions()
	l, err := cache.New(backing, brokenStore{}, cache.WithLogger(log))
	require.NoError(t, err)

	e, err := l.Lookup(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, "123-hello-world", e.Slug)
	assert.Contains(t, buf.String(), "lookup cache read failed")
	assert.Contains(t, buf.String(), "lookup cache write failed")
}

func TestLookup_DeduplicatesConcurrentMisses(t *testing.T) {
	t.Parallel()

	backing := newDiscussions()
	backing.delay = 20 * time.Millisecond
	store := cache.NewMemoryStore()
	defer store.Close()

	l, err := cache.New(backing, store)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			e, err := l.Lookup(context.Background(), 123)
			assert.NoError(t, err)
			assert.Equal(t, "123-hello-world", e.Slug)
		})
	}
	wg.Wait()

	assert.LessOrEqual(t, backing.calls.Load(), int64(2),
		"concurrent misses should share one backing call")
}

func TestLookup_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	backing := newDiscussions()
	backing.delay = 100 * time.Millisecond
	store := cache.NewMemoryStore()
	defer store.Close()

	l, err := cache.New(backing, store)
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.Lookup(firstCtx, 123)
		firstErr <- err
	}()

	type result struct {
		e   forum.Entity
		err error
	}
	second := make(chan result, 1)
	time.AfterFunc(10*time.Millisecond, func() {
		e, err := l.Lookup(context.Background(), 123)
		second <- result{e, err}
	})
	time.AfterFunc(20*time.Millisecond, cancelFirst)

	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, "123-hello-world", res.e.Slug)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int64(1), backing.calls.Load())

	rec, err := store.Get(context.Background(), "discussion:123")
	require.NoError(t, err)
	assert.False(t, rec.Missing)
}

func TestLookup_LoadTimeout(t *testing.T) {
	t.Parallel()

	backing := &countingLookup{next: slowLookup{}}
	store := cache.NewMemoryStore()
	defer store.Close()

	l, err := cache.New(backing, store, cache.WithLoadTimeout(10*time.Millisecond))
	require.NoError(t, err)

	_, err = l.Lookup(context.Background(), 123)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, store.Len())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	store := cache.NewMemoryStore()
	defer store.Close()

	_, err := cache.New(nil, store)
	require.ErrorIs(t, err, cache.ErrNilLookup)

	_, err = cache.New(newDiscussions(), nil)
	require.ErrorIs(t, err, cache.ErrNilStore)
}
