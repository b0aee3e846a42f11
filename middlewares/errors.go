package middlewares

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/archlinux/redirectll/internal"
)

// PanicError is what Recover returns for a recovered panic.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError is what Timeout returns when the deadline passed before a
// response was written. Err is whatever the handler returned.
type TimeoutError struct {
	Err      error
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	ok := errors.As(err, &te)
	return te, ok
}

// ErrorHandler renders errors as a bare status line body:
//
//	*TimeoutError           504
//	*internal.HTTPError     its code
//	anything else           500
//
// 5xx are logged, except panics which Recover already logged. When the
// client has gone away nothing is written.
func ErrorHandler() internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		if errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled) {
			c.LogDebug("client went away", slog.String("error", err.Error()))
			return nil
		}

		code := statusFor(err)
		if code >= http.StatusInternalServerError && !IsPanicError(err) {
			c.LogError("request failed",
				slog.Int("status", code),
				slog.String("error", err.Error()),
			)
		}
		return c.String(code, http.StatusText(code))
	}
}

func statusFor(err error) int {
	if IsTimeoutError(err) {
		return http.StatusGatewayTimeout
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
