package redis

import "errors"

var (
	ErrNoURL         = errors.New("redis: no connection URL")
	ErrInvalidURL    = errors.New("redis: invalid connection URL")
	ErrUnreachable   = errors.New("redis: server unreachable")
	ErrNotResponding = errors.New("redis: ping failed")
)
