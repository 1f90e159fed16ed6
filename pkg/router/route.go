package router

import "strings"

// RouteRecord declares a navigable route.
// Paths use :name segments for parameters and *name for a trailing catch-all:
//
//	{Path: "/users/:id", Name: "user"}
//	{Path: "/docs/*rest", Name: "docs"}
type RouteRecord struct {
	// Path is the route pattern.
	Path string

	// Name optionally identifies the route for lookups and diagnostics.
	Name string
}

// Options configures router construction.
type Options struct {
	// Routes are the initial route records.
	Routes []RouteRecord

	// InitialPath is the path resolved when the router is installed on an
	// application. Defaults to "/".
	InitialPath string
}

// Route is a resolved navigation target.
type Route struct {
	// Path is the actual path navigated to.
	Path string

	// Name is the matched record's name, empty for an unmatched path.
	Name string

	// Params holds the values bound to :name and *name segments.
	Params map[string]string

	// Matched reports whether a route record matched the path.
	Matched bool
}

// splitPath splits a path into segments, ignoring leading and trailing
// slashes.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// matchRecord binds path segments against a record pattern.
// Returns the bound params and whether the pattern matched.
func matchRecord(record RouteRecord, path string) (map[string]string, bool) {
	pattern := splitPath(record.Path)
	segments := splitPath(path)

	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "*") {
			// Catch-all consumes the remainder, including nothing.
			params[seg[1:]] = strings.Join(segments[i:], "/")
			return params, true
		}

		if i >= len(segments) {
			return nil, false
		}

		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = segments[i]
			continue
		}

		if seg != segments[i] {
			return nil, false
		}
	}

	if len(segments) != len(pattern) {
		return nil, false
	}
	return params, true
}
