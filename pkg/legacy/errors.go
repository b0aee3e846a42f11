package legacy

import "errors"

var (
	// ErrLookupFailed wraps lookup errors other than forum.ErrNotFound.
	ErrLookupFailed = errors.New("legacy: entity lookup failed")

	// ErrBuildPath wraps route builder errors.
	ErrBuildPath = errors.New("legacy: failed to build redirect path")

	// ErrMissingLookup is returned by New when a lookup or the route builder is nil.
	ErrMissingLookup = errors.New("legacy: missing lookup")

	// ErrLookupKind is returned by New when a lookup serves the wrong entity kind.
	ErrLookupKind = errors.New("legacy: lookup has wrong kind")

	// ErrInvalidPolicy is returned when a not-found policy name is not recognized.
	ErrInvalidPolicy = errors.New("legacy: invalid not-found policy")
)
