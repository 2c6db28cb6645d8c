package httpserver

import "strings"

// RouteSet is a declared set of route patterns, matched by exact path or by
// prefix. It replaces ad hoc string comparisons in the gate.
type RouteSet struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewRouteSet creates a route set from exact paths and path prefixes
func NewRouteSet(exact []string, prefixes []string) RouteSet {
	set := RouteSet{
		exact:    make(map[string]struct{}, len(exact)),
		prefixes: prefixes,
	}
	for _, path := range exact {
		set.exact[path] = struct{}{}
	}
	return set
}

// Contains reports whether the path is in the set
func (s RouteSet) Contains(path string) bool {
	if _, ok := s.exact[path]; ok {
		return true
	}
	for _, prefix := range s.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// publicRoutes bypass the authorization gate entirely. Logout is public so it
// stays idempotent even with a stale or missing token.
var publicRoutes = NewRouteSet(
	[]string{"/", "/signup", "/login", "/logout", "/health"},
	[]string{"/public/"},
)

// optionalRoutes pass through the gate without an identity when none can be
// resolved, rather than being rejected. Applies to reads only.
var optionalRoutes = NewRouteSet(
	[]string{"/items"},
	nil,
)
