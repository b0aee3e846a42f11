package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync/atomic"
)

// ResponseWriter records the status and body size of a response.
// Only the first status written reaches the client.
type ResponseWriter struct {
	http.ResponseWriter
	status  atomic.Int32
	size    atomic.Int64
	started atomic.Bool
}

// NewResponseWriter wraps w. Status reports 200 until a header is written.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	rw := &ResponseWriter{ResponseWriter: w}
	rw.status.Store(http.StatusOK)
	return rw
}

func (w *ResponseWriter) WriteHeader(code int) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	w.status.Store(int32(code))
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size.Add(int64(n))
	return n, err
}

func (w *ResponseWriter) Status() int   { return int(w.status.Load()) }
func (w *ResponseWriter) Size() int64   { return w.size.Load() }
func (w *ResponseWriter) Written() bool { return w.started.Load() }

// Flush lets streamed proxy responses through.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap is used by http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
