package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// anyMethod marks routes registered via Handle for all HTTP methods.
const anyMethod = "*"

// paramSegment recognizes a whole path segment declaring a named
// parameter, e.g. {id}.
var paramSegment = regexp.MustCompile(`^\{([a-zA-Z_][a-zA-Z0-9_]*)\}$`)

// route is one compiled routing table entry.
type route[C handler.Context] struct {
	method  string
	pattern string
	matcher *regexp.Regexp
	params  []string
	handler handler.HandlerFunc[C]
}

// registry holds routes in registration order. Inline groups share the
// root registry, so precedence stays global across groups.
type registry[C handler.Context] struct {
	routes []*route[C]
}

// match scans routes in registration order and returns the first one
// registered for the method whose matcher accepts the path, together
// with the captured parameters. Overlapping patterns are resolved by
// registration order alone.
func (reg *registry[C]) match(method, path string) (*route[C], map[string]string) {
	for _, rt := range reg.routes {
		if rt.method != anyMethod && rt.method != method {
			continue
		}
		m := rt.matcher.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		var params map[string]string
		if len(rt.params) > 0 {
			params = make(map[string]string, len(rt.params))
			for i, name := range rt.params {
				params[name] = m[i+1]
			}
		}
		return rt, params
	}
	return nil, nil
}

// compilePattern translates a path template into an anchored regexp.
// Each {name} placeholder occupies a whole segment and matches one or
// more digits. A trailing "*" segment matches any remainder, including
// the empty string, captured under the name "*". All other segments
// match literally; trailing slashes are not normalized away.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	var (
		b      strings.Builder
		params []string
		seen   map[string]bool
	)
	b.WriteString("^")

	segments := strings.Split(pattern[1:], "/")
	for i, seg := range segments {
		b.WriteString("/")
		switch {
		case seg == "*":
			if i != len(segments)-1 {
				return nil, nil, fmt.Errorf("%w: %q", ErrWildcardPosition, pattern)
			}
			params = append(params, "*")
			b.WriteString("(.*)")
		case paramSegment.MatchString(seg):
			name := seg[1 : len(seg)-1]
			if seen[name] {
				return nil, nil, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, pattern)
			}
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[name] = true
			params = append(params, name)
			b.WriteString("([0-9]+)")
		default:
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}
	b.WriteString("$")

	matcher, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	return matcher, params, nil
}
