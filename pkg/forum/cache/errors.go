package cache

import "errors"

var (
	// ErrMiss is returned by a Store when a key is absent or expired.
	ErrMiss = errors.New("cache: miss")

	// ErrClosed is returned when writing to a closed store.
	ErrClosed = errors.New("cache: closed")

	ErrMarshal   = errors.New("cache: failed to marshal record")
	ErrUnmarshal = errors.New("cache: failed to unmarshal record")

	// ErrNilLookup is returned by New when there is nothing to decorate.
	ErrNilLookup = errors.New("cache: nil lookup")

	// ErrNilStore is returned by New without a store.
	ErrNilStore = errors.New("cache: nil store")
)
