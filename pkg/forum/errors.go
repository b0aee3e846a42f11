package forum

import "errors"

var (
	// ErrNotFound is returned by a Lookup when the id has no matching record.
	ErrNotFound = errors.New("forum: entity not found")

	// ErrUnknownRoute is returned when a route name is not registered.
	ErrUnknownRoute = errors.New("forum: unknown route")

	// ErrMissingRouteParam is returned when a required route parameter is absent.
	ErrMissingRouteParam = errors.New("forum: missing route parameter")

	// ErrInvalidPattern is returned when a route pattern cannot be parsed.
	ErrInvalidPattern = errors.New("forum: invalid route pattern")
)
