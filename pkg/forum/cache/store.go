package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/archlinux/redirectll/pkg/forum"
)

// Record is what a Store keeps per id: either a resolved entity or the fact
// that the id has no record.
type Record struct {
	Entity  forum.Entity `json:"entity"`
	Missing bool         `json:"missing,omitempty"`
}

// Store holds records with a time to live.
// Get returns ErrMiss for absent or expired keys.
type Store interface {
	Get(ctx context.Context, key string) (Record, error)
	Set(ctx context.Context, key string, rec Record, ttl time.Duration) error
	Close() error
}

func marshalRecord(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Join(ErrUnmarshal, err)
	}
	return rec, nil
}
