package forum

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route names understood by Routes.
const (
	RouteDefault    = "default"
	RouteDiscussion = "discussion"
	RouteUser       = "user"
	RouteTag        = "tag"
)

// DefaultRoutePatterns are the forum's route patterns.
var DefaultRoutePatterns = map[string]string{
	RouteDefault:    "/",
	RouteDiscussion: "/d/{id}[/{near}]",
	RouteUser:       "/u/{username}",
	RouteTag:        "/t/{slug}",
}

// URLBuilder builds the path of a named route.
type URLBuilder interface {
	Path(name string, params map[string]string) (string, error)
}

// segment is one piece of a parsed route pattern.
// Exactly one of literal, param or optional is set.
type segment struct {
	literal  string
	param    string
	optional []segment
}

// Routes builds paths for named forum routes.
// It is immutable after construction and safe for concurrent use.
type Routes struct {
	routes  map[string][]segment
	baseURL string
}

// RoutesOption configures Routes.
type RoutesOption func(*routesConfig)

type routesConfig struct {
	patterns map[string]string
	baseURL  string
}

// WithBaseURL prefixes every built path with baseURL, producing absolute URLs.
// A trailing slash on baseURL is ignored.
func WithBaseURL(baseURL string) RoutesOption {
	return func(c *routesConfig) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRoute registers or replaces the pattern of a named route.
func WithRoute(name, pattern string) RoutesOption {
	return func(c *routesConfig) {
		c.patterns[name] = pattern
	}
}

// NewRoutes creates a route builder with DefaultRoutePatterns and the given options.
//
// Example:
//
//	routes, err := forum.NewRoutes(
//	    forum.WithBaseURL("https://bbs.example.org"),
//	    forum.WithRoute(forum.RouteTag, "/tags/{slug}"),
//	)
func NewRoutes(opts ...RoutesOption) (*Routes, error) {
	cfg := &routesConfig{patterns: make(map[string]string, len(DefaultRoutePatterns))}
	for name, pattern := range DefaultRoutePatterns {
		cfg.patterns[name] = pattern
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Routes{
		routes:  make(map[string][]segment, len(cfg.patterns)),
		baseURL: cfg.baseURL,
	}
	for name, pattern := range cfg.patterns {
		segs, err := parsePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}
		r.routes[name] = segs
	}
	return r, nil
}

// Path builds the path of the named route.
// Parameter values are path-escaped. Parameters not used by the pattern are ignored.
func (r *Routes) Path(name string, params map[string]string) (string, error) {
	segs, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}

	var b strings.Builder
	b.WriteString(r.baseURL)
	if err := render(&b, segs, params); err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}
	return b.String(), nil
}

// render writes segs into b. An optional group is skipped as a whole when any
// of its parameters is missing.
func render(b *strings.Builder, segs []segment, params map[string]string) error {
	for _, s := range segs {
		switch {
		case s.param != "":
			v := params[s.param]
			if v == "" {
				return fmt.Errorf("%w: %s", ErrMissingRouteParam, s.param)
			}
			b.WriteString(url.PathEscape(v))
		case s.optional != nil:
			var group strings.Builder
			err := render(&group, s.optional, params)
			if errors.Is(err, ErrMissingRouteParam) {
				continue
			}
			if err != nil {
				return err
			}
			b.WriteString(group.String())
		default:
			b.WriteString(s.literal)
		}
	}
	return nil
}

// parsePattern splits a route pattern into segments.
// Optional groups cannot be nested.
func parsePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}
	return parseSegments(pattern, false)
}

func parseSegments(pattern string, inGroup bool) ([]segment, error) {
	var (
		segs    []segment
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			segs = append(segs, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed { in %q", ErrInvalidPattern, pattern)
			}
			name := pattern[i+1 : i+end]
			if name == "" || strings.ContainsAny(name, "{[]/") {
				return nil, fmt.Errorf("%w: bad parameter name %q", ErrInvalidPattern, name)
			}
			flush()
			segs = append(segs, segment{param: name})
			i += end
		case '[':
			if inGroup {
				return nil, fmt.Errorf("%w: nested optional group in %q", ErrInvalidPattern, pattern)
			}
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed [ in %q", ErrInvalidPattern, pattern)
			}
			inner, err := parseSegments(pattern[i+1:i+end], true)
			if err != nil {
				return nil, err
			}
			flush()
			if inner == nil {
				inner = []segment{}
			}
			segs = append(segs, segment{optional: inner})
			i += end
		case '}', ']':
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPattern, pattern[i], pattern)
		default:
			literal.WriteByte(pattern[i])
		}
	}
	flush()
	return segs, nil
}

var _ URLBuilder = (*Routes)(nil)
