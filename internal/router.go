package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler declares routes on a router.
//
// Example:
//
//	type ForumProxy struct {
//	    proxy http.Handler
//	}
//
//	func (h *ForumProxy) Routes(r redirectll.Router) {
//	    r.Mount("/", h.proxy)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the
// ErrorHandler unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. It may answer the request itself and skip
// next, which is how legacy URLs are redirected before routing.
//
// Example:
//
//	func Maintenance(next redirectll.HandlerFunc) redirectll.HandlerFunc {
//	    return func(c redirectll.Context) error {
//	        if maintenanceMode.Load() {
//	            return c.String(503, "down for maintenance")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler or middleware.
type ErrorHandler func(Context, error) error

// Router is what a Handler registers its routes on.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// Group starts an inline group that can carry its own middleware.
	Group(fn func(r Router))

	// Route starts a group under a path prefix.
	Route(pattern string, fn func(r Router))

	// Use adds middleware to every route registered on this router.
	Use(mw ...Middleware)

	// Mount attaches a plain http.Handler, such as the forum proxy.
	Mount(pattern string, h http.Handler)
}

type routes struct {
	mux chi.Router
	app *App
}

func (r *routes) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Get(path, r.app.serve(chain(h, mw)))
}

func (r *routes) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Head(path, r.app.serve(chain(h, mw)))
}

func (r *routes) Group(fn func(Router)) {
	r.mux.Group(func(sub chi.Router) { fn(&routes{mux: sub, app: r.app}) })
}

func (r *routes) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) { fn(&routes{mux: sub, app: r.app}) })
}

func (r *routes) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.bridge(m))
	}
}

func (r *routes) Mount(pattern string, h http.Handler) {
	r.mux.Mount(pattern, h)
}

// chain wraps h so that mw[0] is the outermost layer.
func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
