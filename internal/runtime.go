package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archlinux/redirectll/pkg/logger"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 30 * time.Second
)

// RunOption configures App.Run.
type RunOption func(*runner)

// runner is one run of the HTTP server.
type runner struct {
	base            context.Context
	log             *slog.Logger
	shutdownTimeout time.Duration
	hooks           []func(context.Context) error
	onListen        func(addr string)
}

// Logger sets the server's own logger. Nil keeps logging off.
func Logger(l *slog.Logger) RunOption {
	return func(rt *runner) {
		if l != nil {
			rt.log = l
		}
	}
}

// ShutdownTimeout bounds server shutdown and the hooks together (default 30s).
func ShutdownTimeout(d time.Duration) RunOption {
	return func(rt *runner) {
		if d > 0 {
			rt.shutdownTimeout = d
		}
	}
}

// ShutdownHook adds fn to the hooks run, in order, once the server stopped
// accepting requests.
//
// Example:
//
//	redirectll.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(rt *runner) {
		if fn != nil {
			rt.hooks = append(rt.hooks, fn)
		}
	}
}

// OnListen is called with the bound address, which matters for ":0".
func OnListen(fn func(addr string)) RunOption {
	return func(rt *runner) { rt.onListen = fn }
}

// WithContext sets the context whose cancellation stops the server.
func WithContext(ctx context.Context) RunOption {
	return func(rt *runner) {
		if ctx != nil {
			rt.base = ctx
		}
	}
}

// Run serves on addr until SIGINT, SIGTERM or the WithContext context ends,
// then drains the server and runs the shutdown hooks. The hooks also run when
// the server fails to listen or serve.
//
// Example:
//
//	err := app.Run(":8080",
//	    redirectll.Logger(log),
//	    redirectll.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	rt := &runner{
		base:            context.Background(),
		log:             logger.NewNope(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if addr == "" {
		addr = defaultAddr
	}
	return rt.serve(addr, a.mux)
}

func (rt *runner) serve(addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(rt.base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return rt.abort(err)
	}
	bound := ln.Addr().String()
	if rt.onListen != nil {
		rt.onListen(bound)
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	served := make(chan error, 1)
	go func() {
		rt.log.Info("server starting", slog.String("address", bound))
		served <- srv.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return rt.abort(err)
	case <-ctx.Done():
	}

	return rt.shutdown(srv)
}

// shutdown stops the server before the hooks close what requests depend on.
func (rt *runner) shutdown(srv *http.Server) error {
	rt.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), rt.shutdownTimeout)
	defer cancel()

	errs := append([]error{srv.Shutdown(ctx)}, rt.runHooks(ctx)...)
	if err := errors.Join(errs...); err != nil {
		rt.log.Error("shutdown completed with errors", slog.Any("error", err))
		return err
	}
	rt.log.Info("shutdown completed")
	return nil
}

// abort runs the hooks when the server failed to listen or serve.
func (rt *runner) abort(cause error) error {
	rt.log.Error("server failed", slog.Any("error", cause))

	ctx, cancel := context.WithTimeout(context.Background(), rt.shutdownTimeout)
	defer cancel()

	return errors.Join(append([]error{cause}, rt.runHooks(ctx)...)...)
}

func (rt *runner) runHooks(ctx context.Context) []error {
	var errs []error
	for _, hook := range rt.hooks {
		if err := hook(ctx); err != nil {
			rt.log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errs
}
