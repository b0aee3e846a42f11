package upstream

import "errors"

var (
	ErrEmptyURL   = errors.New("upstream: empty forum URL")
	ErrInvalidURL = errors.New("upstream: invalid forum URL")
)
