package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/archlinux/redirectll/internal"
	"github.com/archlinux/redirectll/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked in order for an ID set by a proxy in front of us.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

const maxRequestIDLength = 128

// RequestIDConfig configures RequestID.
type RequestIDConfig struct {
	Headers        []string
	ResponseHeader string
	Generator      func() string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders replaces the inbound headers searched for an ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.Headers = headers }
}

// WithRequestIDGenerator replaces the UUIDv7 generator. Nil is ignored.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader renames the header the ID is echoed in.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if header != "" {
			cfg.ResponseHeader = header
		}
	}
}

// RequestID tags each request with an ID. A well-formed inbound ID is kept,
// otherwise a UUIDv7 is minted. The ID lands in the context for
// RequestIDExtractor, in the response headers (legacy redirects included) and
// in the request headers the forum proxy forwards.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		ResponseHeader: "X-Request-ID",
		Generator:      newRequestID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := cfg.inbound(c)
			if id == "" {
				id = cfg.Generator()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(cfg.ResponseHeader, id)
			c.Request().Header.Set(cfg.ResponseHeader, id)
			return next(c)
		}
	}
}

// inbound returns the first acceptable ID among cfg.Headers.
func (cfg *RequestIDConfig) inbound(c internal.Context) string {
	for _, name := range cfg.Headers {
		if v := c.Header(name); validRequestID(v) {
			return v
		}
	}
	return ""
}

// validRequestID accepts short printable ASCII values so client input is
// safe to echo in headers and logs.
func validRequestID(v string) bool {
	if v == "" || len(v) > maxRequestIDLength {
		return false
	}
	for i := range len(v) {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// GetRequestID returns the ID RequestID stored, or "".
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor logs the request ID as "request_id".
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, _ := ctx.Value(requestIDKey{}).(string)
		return slog.String("request_id", id), id != ""
	}
}
