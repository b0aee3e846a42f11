package legacy

import (
	"fmt"
	"strings"
)

// NotFoundPolicy decides the response when a discussion or user lookup finds nothing.
type NotFoundPolicy int

const (
	// NotFoundStrict answers 404.
	NotFoundStrict NotFoundPolicy = iota
	// NotFoundPermissive falls back to the forum root with 302.
	NotFoundPermissive
)

// String implements fmt.Stringer.
func (p NotFoundPolicy) String() string {
	switch p {
	case NotFoundStrict:
		return "strict"
	case NotFoundPermissive:
		return "permissive"
	}
	return fmt.Sprintf("NotFoundPolicy(%d)", int(p))
}

// UnmarshalText parses "strict" or "permissive".
// It lets the policy be read directly from environment configuration.
func (p *NotFoundPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "strict", "":
		*p = NotFoundStrict
	case "permissive":
		*p = NotFoundPermissive
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, text)
	}
	return nil
}

// Option configures a Redirector.
type Option func(*Redirector)

// WithDoubleDecode enables or disables decoding percent-escaped query strings
// once before parsing. Enabled by default.
func WithDoubleDecode(enabled bool) Option {
	return func(r *Redirector) {
		r.doubleDecode = enabled
	}
}

// WithNotFoundPolicy sets the response for missing discussions and users.
// Default: NotFoundStrict.
func WithNotFoundPolicy(p NotFoundPolicy) Option {
	return func(r *Redirector) {
		r.notFound = p
	}
}
