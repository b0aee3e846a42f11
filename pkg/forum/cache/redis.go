package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records as JSON strings in Redis, shared by every
// redirectll instance pointed at the same server.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store writing keys as "{prefix}:{key}".
// The client lifecycle belongs to the caller (see pkg/redis.Shutdown).
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get returns the record for key.
func (r *RedisStore) Get(ctx context.Context, key string) (Record, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrMiss
		}
		return Record{}, err
	}
	return unmarshalRecord(data)
}

// Set stores rec for ttl. A non-positive ttl is a no-op, since Redis would
// read zero as "never expire".
func (r *RedisStore) Set(ctx context.Context, key string, rec Record, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// Close is a no-op.
func (r *RedisStore) Close() error {
	return nil
}

func (r *RedisStore) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Store = (*RedisStore)(nil)
