package postgres

import "errors"

var (
	// ErrQuery wraps driver errors other than "no rows".
	ErrQuery = errors.New("postgres: lookup query failed")

	// ErrNilQuerier is returned by constructors given no database handle.
	ErrNilQuerier = errors.New("postgres: nil querier")
)
