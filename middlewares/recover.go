package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/archlinux/redirectll/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures Recover.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize changes the stack trace cap. Non-positive sizes are ignored.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack skips stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) { cfg.DisablePrintStack = true }
}

// Recover converts a panic in a later layer into a *PanicError for the
// ErrorHandler and logs it once with the request line and stack.
//
// http.ErrAbortHandler is re-panicked: the reverse proxy raises it to drop a
// connection whose upstream body broke off, and net/http handles it silently.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(v)
				}

				pe := &PanicError{Value: v, Stack: cfg.stack()}
				attrs := []any{
					slog.Any("panic", v),
					slog.String("method", c.Request().Method),
					slog.String("uri", c.Request().RequestURI),
				}
				if pe.Stack != nil {
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}

func (cfg *RecoverConfig) stack() []byte {
	if cfg.DisablePrintStack {
		return nil
	}
	buf := make([]byte, cfg.StackSize)
	return buf[:runtime.Stack(buf, false)]
}
