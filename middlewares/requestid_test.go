package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/archlinux/redirectll/internal"
	"github.com/archlinux/redirectll/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates UUIDv7 when not present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))

		id, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
		require.NoError(t, err)
		require.Equal(t, uuid.Version(7), id.Version())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "existing-request-id-123")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.Equal(t, "existing-request-id-123", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "existing-request-id-123", ctx.Request().Header.Get("X-Request-ID"))
	})

	t.Run("ignores oversized header", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 500)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", long)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.NotEqual(t, long, rec.Header().Get("X-Request-ID"))
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("ignores ids with control characters", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header["X-Request-Id"] = []string{"abc def"}
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID returns stored ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		var capturedID string
		handler := middlewares.RequestID()(func(c internal.Context) error {
			capturedID = middlewares.GetRequestID(c)
			return nil
		})

		require.NoError(t, handler(ctx))
		require.NotEmpty(t, capturedID)
		require.Equal(t, capturedID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID is empty without middleware", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, middlewares.GetRequestID(ctx))
	})
}

func TestRequestID_CustomOptions(t *testing.T) {
	t.Parallel()

	t.Run("custom headers in priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Custom-ID", "custom-123")
		req.Header.Set("X-Trace-ID", "trace-456")
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace-ID", "X-Custom-ID"),
		)(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.Equal(t, "trace-456", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and response header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed-id" }),
			middlewares.WithRequestIDResponseHeader("X-Trace-ID"),
		)(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.Equal(t, "fixed-id", rec.Header().Get("X-Trace-ID"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("nil generator keeps default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID(middlewares.WithRequestIDGenerator(nil))(func(c internal.Context) error {
			return nil
		})

		require.NoError(t, handler(ctx))
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handler := middlewares.RequestID()(func(c internal.Context) error {
			return nil
		})
		require.NoError(t, handler(ctx))

		attr, ok := middlewares.RequestIDExtractor()(ctx.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.Equal(t, rec.Header().Get("X-Request-ID"), attr.Value.String())
	})

	t.Run("returns false without request ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := middlewares.RequestIDExtractor()(req.Context())
		require.False(t, ok)
	})
}
