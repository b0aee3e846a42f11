// Package internal provides the core types behind the redirectll facade.
//
// Import "github.com/archlinux/redirectll" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: owns the chi router, global middleware, health endpoints and the server runtime
//   - Context: request/response access with logging helpers; implements context.Context
//   - Router: interface handlers use to declare routes or mount http.Handlers
//   - Handler: implemented by types that declare routes on a Router
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps a HandlerFunc; global middleware runs before route matching
//   - ErrorHandler: renders errors returned from handlers and middleware
//
// # Request Flow
//
// Global middleware registered with WithMiddleware is adapted onto chi's
// Use chain, so it sees every request before routing. A middleware that
// writes a response and returns without calling next ends the request there.
// This is how legacy URLs are answered before the request reaches the
// mounted forum proxy.
//
// Each middleware layer gets its own Context over the same request. Values
// stored with Set and contexts replaced with SetContext travel down the
// chain with the request.
//
// # Errors
//
// A non-nil error from a handler or middleware is passed to the ErrorHandler
// configured with WithErrorHandler, unless the response was already written.
// Without one, an *HTTPError is answered with its code and anything else
// with 500.
//
// # Health Checks
//
//	app := internal.New(
//	    internal.WithHealthChecks(
//	        internal.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
//
// GET /health/live always answers OK. GET /health/ready runs all checks in
// parallel, bounded by WithCheckTimeout (5 seconds by default), and answers
// 503 if any fails. Readiness JSON carries per-check status and duration. Both
// answer JSON when asked with ?format=json or Accept: application/json.
//
// # Running
//
// App.Run listens, serves until SIGINT, SIGTERM or cancellation of the
// context passed with WithContext, then shuts the server down and runs the
// ShutdownHook functions in registration order.
package internal
