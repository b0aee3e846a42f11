package legacy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/archlinux/redirectll/pkg/forum"
)

// Lookups groups the entity lookups a Redirector resolves ids with.
type Lookups struct {
	Discussions forum.Lookup
	Users       forum.Lookup
	Tags        forum.Lookup
}

// Result is the response for a legacy request.
// Location is empty when Status is 404.
type Result struct {
	Page     Page
	Location string
	Status   int
}

// Redirector maps legacy query strings to redirects.
// It is immutable after New and safe for concurrent use.
type Redirector struct {
	lookups      Lookups
	routes       forum.URLBuilder
	notFound     NotFoundPolicy
	doubleDecode bool
}

// New creates a Redirector. Every lookup must be set and serve its own kind.
func New(lookups Lookups, routes forum.URLBuilder, opts ...Option) (*Redirector, error) {
	if routes == nil {
		return nil, fmt.Errorf("%w: route builder", ErrMissingLookup)
	}
	for kind, l := range map[forum.Kind]forum.Lookup{
		forum.KindDiscussion: lookups.Discussions,
		forum.KindUser:       lookups.Users,
		forum.KindTag:        lookups.Tags,
	} {
		if l == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingLookup, kind)
		}
		if l.Kind() != kind {
			return nil, fmt.Errorf("%w: want %s, got %s", ErrLookupKind, kind, l.Kind())
		}
	}

	r := &Redirector{
		lookups:      lookups,
		routes:       routes,
		notFound:     NotFoundStrict,
		doubleDecode: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve translates a raw query string.
// handled is false when the query has no page parameter; the request is then
// not a legacy URL and must be passed on. Errors are only returned for lookup
// failures other than not-found and for route building failures.
func (r *Redirector) Resolve(ctx context.Context, rawQuery string) (res Result, handled bool, err error) {
	q := ParseQuery(rawQuery, r.doubleDecode)

	page, ok := q.Get(ParamPage)
	if !ok {
		return Result{}, false, nil
	}

	p := Page(page)
	switch p {
	case PagePostings:
		res, err = r.postings(ctx, q)
	case PageShowUser, PageUserRecent:
		res, err = r.user(ctx, q)
	case PageThreads:
		res, err = r.threads(ctx, q)
	default:
		if p.IsResource() {
			res = notFoundResult()
		} else {
			res, err = r.fallback()
		}
	}
	if err != nil {
		return Result{}, true, err
	}

	res.Page = p
	return res, true, nil
}

func (r *Redirector) postings(ctx context.Context, q Query) (Result, error) {
	id, ok := q.Int(ParamThread)
	if !ok {
		return r.fallback()
	}

	d, err := r.lookups.Discussions.Lookup(ctx, id)
	if err != nil {
		return r.lookupFailed(err, r.notFound)
	}

	params := map[string]string{"id": d.Slug}
	if q.Has(ParamPost) {
		post, _ := q.Int(ParamPost)
		near := post + 1
		if post == -1 {
			near = int64(d.LastPostNumber)
		}
		params["near"] = strconv.FormatInt(near, 10)
	}
	return r.redirect(forum.RouteDiscussion, params, http.StatusMovedPermanently)
}

func (r *Redirector) user(ctx context.Context, q Query) (Result, error) {
	id, ok := q.Int(ParamUser)
	if !ok {
		return r.fallback()
	}

	u, err := r.lookups.Users.Lookup(ctx, id)
	if err != nil {
		return r.lookupFailed(err, r.notFound)
	}
	return r.redirect(forum.RouteUser, map[string]string{"username": u.Slug}, http.StatusMovedPermanently)
}

func (r *Redirector) threads(ctx context.Context, q Query) (Result, error) {
	id, ok := q.Int(ParamForum)
	if !ok {
		return r.fallback()
	}

	t, err := r.lookups.Tags.Lookup(ctx, id)
	if err != nil {
		// Missing tags always fall back to the forum root.
		return r.lookupFailed(err, NotFoundPermissive)
	}
	return r.redirect(forum.RouteTag, map[string]string{"slug": t.Slug}, http.StatusMovedPermanently)
}

// lookupFailed maps a lookup error: not-found follows policy, anything else is returned.
func (r *Redirector) lookupFailed(err error, policy NotFoundPolicy) (Result, error) {
	if !errors.Is(err, forum.ErrNotFound) {
		return Result{}, errors.Join(ErrLookupFailed, err)
	}
	if policy == NotFoundPermissive {
		return r.fallback()
	}
	return notFoundResult(), nil
}

// fallback redirects to the forum root.
func (r *Redirector) fallback() (Result, error) {
	return r.redirect(forum.RouteDefault, nil, http.StatusFound)
}

func (r *Redirector) redirect(route string, params map[string]string, status int) (Result, error) {
	path, err := r.routes.Path(route, params)
	if err != nil {
		return Result{}, errors.Join(ErrBuildPath, err)
	}
	return Result{Status: status, Location: path}, nil
}

func notFoundResult() Result {
	return Result{Status: http.StatusNotFound}
}
