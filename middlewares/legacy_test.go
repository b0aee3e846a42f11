package middlewares_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlinux/redirectll/internal"
	"github.com/archlinux/redirectll/middlewares"
	"github.com/archlinux/redirectll/pkg/forum"
	"github.com/archlinux/redirectll/pkg/legacy"
)

type brokenLookup struct{ kind forum.Kind }

func (l brokenLookup) Kind() forum.Kind { return l.kind }

func (l brokenLookup) Lookup(context.Context, int64) (forum.Entity, error) {
	return forum.Entity{}, errors.New("connection refused")
}

func newRedirector(t *testing.T, lookups *legacy.Lookups) *legacy.Redirector {
	t.Helper()

	l := legacy.Lookups{
		Discussions: forum.NewStaticLookup(forum.KindDiscussion,
			forum.Entity{ID: 123, Slug: forum.DiscussionSlug(123, "foo"), LastPostNumber: 7},
		),
		Users: forum.NewStaticLookup(forum.KindUser,
			forum.Entity{ID: 789, Slug: forum.UsernameSlug("foo-username")},
		),
		Tags: forum.NewStaticLookup(forum.KindTag,
			forum.Entity{ID: 456, Slug: "foo-tag"},
		),
	}
	if lookups != nil {
		l = *lookups
	}

	routes, err := forum.NewRoutes()
	require.NoError(t, err)

	r, err := legacy.New(l, routes)
	require.NoError(t, err)
	return r
}

func TestLegacyRedirect(t *testing.T) {
	t.Parallel()

	mw := middlewares.LegacyRedirect(newRedirector(t, nil))

	tests := []struct {
		name     string
		method   string
		target   string
		status   int
		location string
		next     bool
	}{
		{"postings", http.MethodGet, "/?page=Postings;thread=123;post=2", http.StatusMovedPermanently, "/d/123-foo/3", false},
		{"postings last post", http.MethodGet, "/?page=Postings;thread=123;post=-1", http.StatusMovedPermanently, "/d/123-foo/7", false},
		{"postings head", http.MethodHead, "/?page=Postings;thread=123;post=2", http.StatusMovedPermanently, "/d/123-foo/3", false},
		{"user", http.MethodGet, "/?page=ShowUser;user=789", http.StatusMovedPermanently, "/u/foo-username", false},
		{"user recent", http.MethodGet, "/?page=UserRecent&user=789", http.StatusMovedPermanently, "/u/foo-username", false},
		{"threads", http.MethodGet, "/?page=Threads;forum=456", http.StatusMovedPermanently, "/t/foo-tag", false},
		{"missing tag", http.MethodGet, "/?page=Threads;forum=1", http.StatusFound, "/", false},
		{"missing discussion", http.MethodGet, "/?page=Postings;thread=1", http.StatusNotFound, "", false},
		{"resource", http.MethodGet, "/?page=GetRecent", http.StatusNotFound, "", false},
		{"unknown page", http.MethodGet, "/?page=FOO", http.StatusFound, "/", false},
		{"no page", http.MethodGet, "/?foo=bar", http.StatusOK, "", true},
		{"no query", http.MethodGet, "/", http.StatusOK, "", true},
		{"other path", http.MethodGet, "/index.php?page=Postings;thread=123", http.StatusOK, "", true},
		{"post method", http.MethodPost, "/?page=Postings;thread=123", http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			ctx := newTestContext(rec, httptest.NewRequest(tt.method, tt.target, nil))

			var called bool
			handler := mw(func(c internal.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(ctx))
			assert.Equal(t, tt.next, called)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestLegacyRedirect_LogsHandledRequests(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?page=Threads;forum=456", nil))

	handler := middlewares.LegacyRedirect(newRedirector(t, nil))(func(c internal.Context) error {
		return nil
	})
	require.NoError(t, handler(ctx))

	records := ctx.logRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "DEBUG", records[0]["level"])
	assert.Equal(t, "Threads", records[0]["page"])
	assert.Equal(t, "/t/foo-tag", records[0]["location"])
	assert.EqualValues(t, http.StatusMovedPermanently, records[0]["status"])
}

func TestLegacyRedirect_LookupFailure(t *testing.T) {
	t.Parallel()

	r := newRedirector(t, &legacy.Lookups{
		Discussions: brokenLookup{kind: forum.KindDiscussion},
		Users:       brokenLookup{kind: forum.KindUser},
		Tags:        brokenLookup{kind: forum.KindTag},
	})

	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, httptest.NewRequest(http.MethodGet, "/?page=Postings;thread=123", nil))

	handler := middlewares.LegacyRedirect(r)(func(c internal.Context) error {
		t.Fatal("next must not be called")
		return nil
	})

	err := handler(ctx)
	require.ErrorIs(t, err, legacy.ErrLookupFailed)
	require.False(t, ctx.Written())
}

// forumStub stands in for the upstream forum.
type forumStub struct{}

func (forumStub) Routes(r internal.Router) {
	r.Mount("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "forum:"+r.URL.RequestURI())
	}))
}

func TestLegacyRedirect_InApp(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(middlewares.ErrorHandler()),
		internal.WithMiddleware(
			middlewares.AccessLog(),
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(0),
			middlewares.LegacyRedirect(newRedirector(t, nil)),
		),
		internal.WithHandlers(forumStub{}),
	)

	do := func(method, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(method, target, nil))
		return w
	}

	t.Run("legacy url is redirected", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{http.MethodGet, http.MethodHead} {
			w := do(method, "/?page=Postings;thread=123;post=2")
			assert.Equal(t, http.StatusMovedPermanently, w.Code)
			assert.Equal(t, "/d/123-foo/3", w.Header().Get("Location"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.Empty(t, w.Body.String())
		}
	})

	t.Run("other requests reach the forum", func(t *testing.T) {
		t.Parallel()

		w := do(http.MethodGet, "/d/123-foo?sort=latest")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "forum:/d/123-foo?sort=latest", w.Body.String())

		w = do(http.MethodGet, "/?q=search")
		assert.Equal(t, "forum:/?q=search", w.Body.String())
	})

	t.Run("lookup failure is 500", func(t *testing.T) {
		t.Parallel()

		broken := internal.New(
			internal.WithErrorHandler(middlewares.ErrorHandler()),
			internal.WithMiddleware(middlewares.LegacyRedirect(newRedirector(t, &legacy.Lookups{
				Discussions: brokenLookup{kind: forum.KindDiscussion},
				Users:       brokenLookup{kind: forum.KindUser},
				Tags:        brokenLookup{kind: forum.KindTag},
			}))),
			internal.WithHandlers(forumStub{}),
		)

		w := httptest.NewRecorder()
		broken.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?page=ShowUser;user=1", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
