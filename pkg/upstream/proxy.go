package upstream

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"
)

// Config holds the forum the service fronts.
type Config struct {
	URL           string        `env:"FORUM_UPSTREAM_URL,required"`
	PreserveHost  bool          `env:"FORUM_UPSTREAM_PRESERVE_HOST" envDefault:"true"`
	FlushInterval time.Duration `env:"FORUM_UPSTREAM_FLUSH_INTERVAL" envDefault:"0s"`
}

// Option configures the proxy.
type Option func(*proxyOptions)

type proxyOptions struct {
	logger        *slog.Logger
	transport     http.RoundTripper
	preserveHost  bool
	flushInterval time.Duration
}

// WithPreserveHost keeps the client's Host header instead of the upstream's.
// Forums that build absolute links from Host need it.
func WithPreserveHost(v bool) Option {
	return func(o *proxyOptions) {
		o.preserveHost = v
	}
}

// WithFlushInterval sets how often buffered response bodies are flushed.
// Negative flushes after every write.
func WithFlushInterval(d time.Duration) Option {
	return func(o *proxyOptions) {
		o.flushInterval = d
	}
}

// WithTransport replaces the round tripper used to reach the forum.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *proxyOptions) {
		if rt != nil {
			o.transport = rt
		}
	}
}

// WithLogger sets the logger upstream failures are reported on.
func WithLogger(log *slog.Logger) Option {
	return func(o *proxyOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// NewProxy returns a reverse proxy forwarding every request to target.
// The query string is forwarded verbatim. X-Forwarded-For, X-Forwarded-Host and X-Forwarded-Proto are set from the
// inbound request. When the forum cannot be reached the client gets 502.
func NewProxy(target string, opts ...Option) (*httputil.ReverseProxy, error) {
	if target == "" {
		return nil, ErrEmptyURL
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	o := &proxyOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			// httputil drops query parameters net/url cannot parse, such as
			// ";"-separated ones. The forum gets the query as sent.
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.SetURL(u)
			pr.SetXForwarded()
			if o.preserveHost {
				pr.Out.Host = pr.In.Host
			}
		},
		Transport:     o.transport,
		FlushInterval: o.flushInterval,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			o.logger.ErrorContext(r.Context(), "forum upstream failed",
				slog.String("method", r.Method),
				slog.String("uri", r.URL.RequestURI()),
				slog.Any("error", err),
			)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		},
	}, nil
}

// NewProxyFromConfig builds the proxy described by cfg.
func NewProxyFromConfig(cfg Config, opts ...Option) (*httputil.ReverseProxy, error) {
	return NewProxy(cfg.URL, append([]Option{
		WithPreserveHost(cfg.PreserveHost),
		WithFlushInterval(cfg.FlushInterval),
	}, opts...)...)
}
