package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlinux/redirectll/internal"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	require.False(t, rw.Written())
	require.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusMovedPermanently)

	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusMovedPermanently, rw.Status())
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Zero(t, rw.Size())
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	rw.WriteHeader(http.StatusFound)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusFound, rw.Status())
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = rw.Write([]byte(" world"))
	require.NoError(t, err)

	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusOK, rw.Status())
	assert.Equal(t, int64(11), rw.Size())
	assert.Equal(t, "hello world", w.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	rw.Flush()
	assert.True(t, w.Flushed)
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	assert.Same(t, w, rw.Unwrap())
}

func TestResponseWriter_Header(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	rw.Header().Set("Location", "/d/1")
	rw.WriteHeader(http.StatusFound)

	assert.Equal(t, "/d/1", w.Header().Get("Location"))
}
