package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	expiresAt time.Time
	rec       Record
	key       string
}

func (e *memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	cleanupInterval time.Duration
	maxEntries      int
}

// WithMaxEntries bounds the store. When full, the least recently used
// record is evicted. Zero means unbounded.
// Default: 10000.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = max(n, 0)
	}
}

// WithCleanupInterval sets how often expired records are swept.
// Zero disables the background sweep; expired records are then dropped on access.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// MemoryStore is a process-local LRU store with per-record expiry.
// The map gives O(1) lookup; the list keeps recency order, most recent first.
type MemoryStore struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     memoryOptions
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemoryStore creates a MemoryStore. Call Close to stop the sweeper.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := memoryOptions{
		cleanupInterval: time.Minute,
		maxEntries:      10000,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &MemoryStore{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

// Get returns the record for key and marks it recently used.
func (m *MemoryStore) Get(_ context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return Record{}, ErrMiss
	}
	e := elem.Value.(*memoryEntry)
	if e.expired(time.Now()) {
		m.remove(elem)
		return Record{}, ErrMiss
	}
	m.eviction.MoveToFront(elem)
	return e.rec, nil
}

// Set stores rec for ttl. A non-positive ttl is a no-op.
func (m *MemoryStore) Set(_ context.Context, key string, rec Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl <= 0 {
		return nil
	}
	expiresAt := time.Now().Add(ttl)

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memoryEntry)
		e.rec = rec
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&memoryEntry{key: key, rec: rec, expiresAt: expiresAt})
	return nil
}

// Len reports the number of records held, expired ones included until swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the sweeper. It is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memoryEntry).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove must be called with mu held.
func (m *MemoryStore) remove(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry).key)
}

var _ Store = (*MemoryStore)(nil)
