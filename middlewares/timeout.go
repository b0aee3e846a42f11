package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/archlinux/redirectll/internal"
)

// DefaultTimeout applies when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context, which bounds forum lookups
// and the upstream round trip made with it. A handler that hits the deadline
// without writing anything has its result replaced by a *TimeoutError.
// A client hanging up early is not a timeout.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if c.Written() || !errors.Is(context.Cause(ctx), context.DeadlineExceeded) {
				return err
			}

			c.LogWarn("request timeout", "timeout", timeout.String())
			return &TimeoutError{Duration: timeout, Err: err}
		}
	}
}
