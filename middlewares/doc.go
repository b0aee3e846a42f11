// Package middlewares provides the HTTP middleware of the redirectll service.
//
// # Legacy URLs
//
// LegacyRedirect answers requests for the old forum's URLs before they are
// routed. It needs a legacy.Redirector built from forum lookups and routes:
//
//	redirector, err := legacy.New(legacy.Lookups{
//	    Discussions: discussions,
//	    Users:       users,
//	    Tags:        tags,
//	}, routes)
//
//	app := redirectll.New(
//	    redirectll.WithMiddleware(middlewares.LegacyRedirect(redirector)),
//	    redirectll.WithHandlers(forumProxy),
//	)
//
// Requests that are not legacy URLs reach the mounted handlers unchanged.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID or
// X-Correlation-ID when a well-formed one was sent and generating a UUIDv7
// otherwise. The ID is echoed in the response and forwarded upstream.
// RequestIDExtractor adds it to every log line:
//
//	redirectll.WithLogger("redirectll", middlewares.RequestIDExtractor())
//
// # Recover and Timeout
//
// Recover turns panics into *PanicError, letting http.ErrAbortHandler
// through. Timeout puts a deadline on the
// request context and returns *TimeoutError when the handler ran out of
// time without answering. ErrorHandler renders both:
//
//	app := redirectll.New(
//	    redirectll.WithErrorHandler(middlewares.ErrorHandler()),
//	    redirectll.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(10*time.Second),
//	        middlewares.LegacyRedirect(redirector),
//	    ),
//	)
//
// # Access Log
//
// AccessLog writes one line per request with method, path, query, status,
// size and duration.
package middlewares
