package internal

import (
	"errors"
	"net/http"
)

// HTTPError is an error that knows which status the client should see.
// Message is safe to show; Err is only logged.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

// NewHTTPError returns an HTTPError for code. An empty message falls back to
// the status text.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusCode returns the status the error handler responds with.
func (e *HTTPError) StatusCode() int { return e.Code }

// StatusText returns the canonical text for the status code.
func (e *HTTPError) StatusText() string { return http.StatusText(e.Code) }

// WithCause attaches the underlying error and returns e.
func (e *HTTPError) WithCause(err error) *HTTPError {
	e.Err = err
	return e
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrInternal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

func ErrBadGateway(message string) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, message)
}

func ErrGatewayTimeout(message string) *HTTPError {
	return NewHTTPError(http.StatusGatewayTimeout, message)
}

// IsHTTPError reports whether err wraps an *HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError returns the first *HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return nil
	}
	return httpErr
}
