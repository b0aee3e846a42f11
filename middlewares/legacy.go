package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/archlinux/redirectll/internal"
	"github.com/archlinux/redirectll/pkg/legacy"
)

// LegacyRedirect returns middleware that answers legacy forum URLs.
//
// Only GET and HEAD requests for exactly "/" with a non-empty query are
// inspected. Those carrying a page parameter are resolved by r and answered
// with a redirect or 404 without calling next; every other request is passed
// on unchanged. Lookup and route failures are returned as errors.
//
// Register it with WithMiddleware so it runs before route matching.
func LegacyRedirect(r *legacy.Redirector) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			req := c.Request()
			if req.URL.Path != "/" || req.URL.RawQuery == "" {
				return next(c)
			}
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}

			res, handled, err := r.Resolve(c.Context(), req.URL.RawQuery)
			if err != nil {
				return err
			}
			if !handled {
				return next(c)
			}

			c.LogDebug("legacy url",
				slog.String("page", string(res.Page)),
				slog.Int("status", res.Status),
				slog.String("location", res.Location),
			)

			if res.Location == "" {
				return c.NoContent(res.Status)
			}
			return c.Redirect(res.Status, res.Location)
		}
	}
}
