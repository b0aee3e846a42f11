package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Context is what handlers and middleware see for one request.
// It satisfies context.Context through the current request context, so it
// can be passed straight to lookups and other blocking calls.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// ResponseWriter exposes the status and size written so far.
	ResponseWriter() *ResponseWriter

	Context() context.Context

	// SetContext replaces the request context for everything downstream.
	SetContext(ctx context.Context)

	// Set stores value under key in the request context; Get reads it back.
	Set(key, value any)
	Get(key any) any

	Query(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect writes code with a Location header and no body.
	Redirect(code int, url string) error

	// Written reports whether the status line has been sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)
}

type reqCtx struct {
	req *http.Request
	rw  *ResponseWriter
	log *slog.Logger
}

// newContext wraps w unless an outer layer already did.
func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *reqCtx {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &reqCtx{req: r, rw: rw, log: log}
}

func (c *reqCtx) Deadline() (time.Time, bool) { return c.req.Context().Deadline() }
func (c *reqCtx) Done() <-chan struct{}       { return c.req.Context().Done() }
func (c *reqCtx) Err() error                  { return c.req.Context().Err() }
func (c *reqCtx) Value(key any) any           { return c.req.Context().Value(key) }

func (c *reqCtx) Request() *http.Request          { return c.req }
func (c *reqCtx) Response() http.ResponseWriter   { return c.rw }
func (c *reqCtx) ResponseWriter() *ResponseWriter { return c.rw }
func (c *reqCtx) Context() context.Context        { return c.req.Context() }

func (c *reqCtx) SetContext(ctx context.Context) {
	c.req = c.req.WithContext(ctx)
}

func (c *reqCtx) Set(key, value any) {
	c.SetContext(context.WithValue(c.req.Context(), key, value))
}

func (c *reqCtx) Get(key any) any { return c.req.Context().Value(key) }

func (c *reqCtx) Query(name string) string  { return c.req.URL.Query().Get(name) }
func (c *reqCtx) Header(name string) string { return c.req.Header.Get(name) }

func (c *reqCtx) SetHeader(name, value string) {
	c.rw.Header().Set(name, value)
}

func (c *reqCtx) JSON(code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(code, "application/json; charset=utf-8", append(body, '\n'))
}

func (c *reqCtx) String(code int, s string) error {
	return c.write(code, "text/plain; charset=utf-8", []byte(s))
}

func (c *reqCtx) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

func (c *reqCtx) Redirect(code int, url string) error {
	c.rw.Header().Set("Location", url)
	return c.NoContent(code)
}

func (c *reqCtx) write(code int, contentType string, body []byte) error {
	c.rw.Header().Set("Content-Type", contentType)
	c.rw.WriteHeader(code)
	_, err := c.rw.Write(body)
	return err
}

func (c *reqCtx) Written() bool { return c.rw.Written() }

func (c *reqCtx) Logger() *slog.Logger { return c.log }

func (c *reqCtx) LogDebug(msg string, attrs ...any) { c.emit(slog.LevelDebug, msg, attrs) }
func (c *reqCtx) LogInfo(msg string, attrs ...any)  { c.emit(slog.LevelInfo, msg, attrs) }
func (c *reqCtx) LogWarn(msg string, attrs ...any)  { c.emit(slog.LevelWarn, msg, attrs) }
func (c *reqCtx) LogError(msg string, attrs ...any) { c.emit(slog.LevelError, msg, attrs) }

func (c *reqCtx) emit(level slog.Level, msg string, attrs []any) {
	c.log.Log(c.req.Context(), level, msg, attrs...)
}

// ContextValue returns the value stored under key as T, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}
