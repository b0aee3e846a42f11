package middlewares

import (
	"log/slog"
	"time"

	"github.com/archlinux/redirectll/internal"
)

// AccessLog returns middleware that logs one line per request after it completes.
// Status and size are read from the response writer, so responses written by
// later middleware and by mounted handlers are reported alike. Register it
// right after RequestID so the line carries the request id.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("query", c.Request().URL.RawQuery),
				slog.Int("status", rw.Status()),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				c.LogWarn("request", attrs...)
				return err
			}

			c.LogInfo("request", attrs...)
			return nil
		}
	}
}
