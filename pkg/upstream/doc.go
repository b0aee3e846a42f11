// Package upstream forwards requests the legacy redirect middleware does not
// handle to the forum application.
//
//	proxy, err := upstream.NewProxy("http://forum:8080",
//	    upstream.WithPreserveHost(true),
//	    upstream.WithLogger(log),
//	)
//	app := redirectll.New(
//	    redirectll.WithMiddleware(middlewares.LegacyRedirect(redirector)),
//	    redirectll.WithHandlers(upstream.NewHandler(proxy)),
//	)
//
// The proxy is a [net/http/httputil.ReverseProxy] using the Rewrite hook, so
// hop-by-hop headers are stripped and X-Forwarded-* headers are set for the
// forum. Unreachable upstreams produce 502 Bad Gateway.
package upstream
