package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	probeHealthy   = "healthy"
	probeUnhealthy = "unhealthy"

	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
	defaultProbeTimeout  = 5 * time.Second
)

// CheckFunc reports whether a dependency is usable.
// db.Healthcheck and redis.Healthcheck return closures of this shape.
type CheckFunc func(ctx context.Context) error

// HealthOption configures the probe endpoints.
type HealthOption func(*prober)

// WithLivenessPath overrides the liveness path ("/health/live").
func WithLivenessPath(path string) HealthOption {
	return func(p *prober) {
		if path != "" {
			p.livePath = path
		}
	}
}

// WithReadinessPath overrides the readiness path ("/health/ready").
func WithReadinessPath(path string) HealthOption {
	return func(p *prober) {
		if path != "" {
			p.readyPath = path
		}
	}
}

// WithReadinessCheck registers a named readiness check.
// Registering the same name twice replaces the earlier check.
//
// Example:
//
//	redirectll.WithReadinessCheck("forum-db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(p *prober) {
		if fn == nil {
			return
		}
		p.checks[name] = fn
	}
}

// WithCheckTimeout bounds a whole readiness probe. Non-positive values are ignored.
func WithCheckTimeout(d time.Duration) HealthOption {
	return func(p *prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// prober serves the liveness and readiness endpoints.
type prober struct {
	livePath  string
	readyPath string
	timeout   time.Duration
	checks    map[string]CheckFunc
	logger    *slog.Logger
}

func newProber(opts ...HealthOption) *prober {
	p := &prober{
		livePath:  defaultLivenessPath,
		readyPath: defaultReadinessPath,
		timeout:   defaultProbeTimeout,
		checks:    map[string]CheckFunc{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// probeReport is the JSON body of both endpoints.
type probeReport struct {
	Status string                 `json:"status"`
	Checks map[string]probeResult `json:"checks,omitempty"`
}

type probeResult struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type namedResult struct {
	name string
	probeResult
}

func (p *prober) mount(r chi.Router, log *slog.Logger) {
	p.logger = log
	r.Get(p.livePath, p.live)
	r.Get(p.readyPath, p.ready)
}

func (p *prober) live(w http.ResponseWriter, r *http.Request) {
	respondProbe(w, r, probeReport{Status: probeHealthy})
}

func (p *prober) ready(w http.ResponseWriter, r *http.Request) {
	respondProbe(w, r, p.run(r.Context()))
}

// run executes every check concurrently under the probe timeout.
func (p *prober) run(ctx context.Context) probeReport {
	report := probeReport{Status: probeHealthy}
	if len(p.checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out := make(chan namedResult, len(p.checks))
	for name, check := range p.checks {
		go func() {
			start := time.Now()
			err := check(ctx)
			res := namedResult{name: name, probeResult: probeResult{
				Status:   probeHealthy,
				Duration: time.Since(start).Round(time.Microsecond).String(),
			}}
			if err != nil {
				res.Status = probeUnhealthy
				res.Error = err.Error()
			}
			out <- res
		}()
	}

	report.Checks = make(map[string]probeResult, len(p.checks))
	var failed []string
	for range len(p.checks) {
		res := <-out
		report.Checks[res.name] = res.probeResult
		if res.Status == probeUnhealthy {
			failed = append(failed, res.name)
		}
	}

	if len(failed) > 0 {
		slices.Sort(failed)
		report.Status = probeUnhealthy
		for _, name := range failed {
			p.logger.WarnContext(ctx, "readiness check failed",
				slog.String("check", name),
				slog.String("error", report.Checks[name].Error),
			)
		}
	}
	return report
}

// respondProbe writes JSON when asked for it via ?format=json or the Accept
// header and a plain-text body otherwise.
func respondProbe(w http.ResponseWriter, r *http.Request, report probeReport) {
	code := http.StatusOK
	body := "OK"
	if report.Status != probeHealthy {
		code = http.StatusServiceUnavailable
		body = "Service Unavailable"
	}

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(report)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
