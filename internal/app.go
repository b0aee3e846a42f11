package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/archlinux/redirectll/pkg/logger"
)

// App is the HTTP front of the service: global middleware, probes and the
// routes declared by handlers, all on one chi mux. It is built once by New.
type App struct {
	mux         chi.Router
	log         *slog.Logger
	onError     ErrorHandler
	notFound    HandlerFunc
	notAllowed  HandlerFunc
	probes      *prober
	middlewares []Middleware
	handlers    []Handler
}

// Option configures an App.
type Option func(*App)

// New builds an App.
//
// Example:
//
//	app := redirectll.New(
//	    redirectll.WithMiddleware(middlewares.LegacyRedirect(redirector)),
//	    redirectll.WithHandlers(upstream.NewHandler(proxy)),
//	)
func New(opts ...Option) *App {
	a := &App{
		mux: chi.NewRouter(),
		log: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.build()
	return a
}

// WithMiddleware appends global middleware. It runs in the given order for
// every request, before route matching.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

// WithHandlers appends handlers whose Routes are registered by New.
func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithErrorHandler sets the renderer for errors nobody answered yet.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.onError = h }
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFound = h }
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.notAllowed = h }
}

// WithHealthChecks serves the liveness and readiness probes.
//
// Example:
//
//	redirectll.WithHealthChecks(
//	    redirectll.WithReadinessCheck("forum-db", db.Healthcheck(pool)),
//	    redirectll.WithReadinessCheck("cache", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) { a.probes = newProber(opts...) }
}

// WithLogger logs through logger.New with the given extractors and a
// "component" attribute.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.log = logger.New(extractors...).With(slog.String("component", component))
	}
}

// WithCustomLogger sets the logger handed to every Context. Nil is ignored.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// Router returns the mux serving every request the App knows about.
func (a *App) Router() chi.Router {
	return a.mux
}

func (a *App) build() {
	if a.notFound != nil {
		a.mux.NotFound(a.serve(a.notFound))
	}
	if a.notAllowed != nil {
		a.mux.MethodNotAllowed(a.serve(a.notAllowed))
	}

	for _, mw := range a.middlewares {
		a.mux.Use(a.bridge(mw))
	}

	if a.probes != nil {
		a.probes.mount(a.mux, a.log)
	}

	r := &routes{mux: a.mux, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// serve turns h into an http.HandlerFunc.
func (a *App) serve(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.log)
		if err := h(c); err != nil {
			a.fail(c, err)
		}
	}
}

// bridge turns mw into chi middleware. The next handler gets the request as
// mw left it, so Set and SetContext carry downstream.
func (a *App) bridge(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.serve(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}

// fail renders err unless the response has already started.
func (a *App) fail(c Context, err error) {
	switch {
	case c.Written():
		c.LogError("error after response was written", slog.Any("error", err))
	case a.onError != nil:
		if herr := a.onError(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr))
		}
	default:
		code := http.StatusInternalServerError
		if httpErr := AsHTTPError(err); httpErr != nil {
			code = httpErr.Code
		}
		if code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Any("error", err))
		}
		http.Error(c.Response(), http.StatusText(code), code)
	}
}
