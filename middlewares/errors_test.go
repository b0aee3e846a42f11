package middlewares_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/archlinux/redirectll/internal"
	"github.com/archlinux/redirectll/middlewares"
	"github.com/archlinux/redirectll/pkg/legacy"
)

func TestErrorTypes(t *testing.T) {
	t.Parallel()

	pe := &middlewares.PanicError{Value: 42}
	te := &middlewares.TimeoutError{Duration: 250 * time.Millisecond}

	require.Equal(t, "panic: 42", pe.Error())
	require.Equal(t, "request timeout after 250ms", te.Error())

	wrappedPanic := fmt.Errorf("layer: %w", pe)
	wrappedTimeout := fmt.Errorf("layer: %w", te)

	require.True(t, middlewares.IsPanicError(wrappedPanic))
	require.False(t, middlewares.IsPanicError(wrappedTimeout))
	require.True(t, middlewares.IsTimeoutError(wrappedTimeout))
	require.False(t, middlewares.IsTimeoutError(nil))

	got, ok := middlewares.AsPanicError(wrappedPanic)
	require.True(t, ok)
	require.Same(t, pe, got)

	gotTimeout, ok := middlewares.AsTimeoutError(wrappedTimeout)
	require.True(t, ok)
	require.Same(t, te, gotTimeout)

	_, ok = middlewares.AsTimeoutError(errors.New("plain"))
	require.False(t, ok)
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		logged bool
	}{
		{"lookup failure", errors.Join(legacy.ErrLookupFailed, errors.New("db down")), http.StatusInternalServerError, true},
		{"timeout", &middlewares.TimeoutError{Duration: time.Second}, http.StatusGatewayTimeout, true},
		{"panic is already logged", &middlewares.PanicError{Value: "boom"}, http.StatusInternalServerError, false},
		{"http error", internal.ErrNotFound(""), http.StatusNotFound, false},
		{"bad gateway", internal.ErrBadGateway("upstream"), http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/?page=Postings", nil))

			require.NoError(t, middlewares.ErrorHandler()(ctx, tt.err))
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, http.StatusText(tt.status), rec.Body.String())

			if tt.logged {
				require.Len(t, ctx.logRecords(), 1)
			} else {
				require.Empty(t, ctx.logRecords())
			}
		})
	}
}

func TestErrorHandler_ClientGone(t *testing.T) {
	t.Parallel()

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/?page=Postings;thread=1", nil).WithContext(reqCtx))

	err := errors.Join(legacy.ErrLookupFailed, context.Canceled)
	require.NoError(t, middlewares.ErrorHandler()(ctx, err))
	require.False(t, ctx.Written())

	records := ctx.logRecords()
	require.Len(t, records, 1)
	require.Equal(t, "DEBUG", records[0]["level"])
}
