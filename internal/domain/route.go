package domain

import (
	"fmt"
	"strings"
)

// PageID identifies one of the site's pages.
type PageID string

const (
	PageHome      PageID = "home"
	PageAnalytics PageID = "analytics"
	PageResources PageID = "resources"
	PagePrivacy   PageID = "privacy"
	PageTerms     PageID = "terms"
	PageContact   PageID = "contact"
)

// AllPages lists every page the site must be able to render.
var AllPages = []PageID{
	PageHome,
	PageAnalytics,
	PageResources,
	PagePrivacy,
	PageTerms,
	PageContact,
}

// RootPath is the path of the home route.
const RootPath = "/"

// Route maps a URL path to a page.
type Route struct {
	Path string
	Page PageID
}

// DefaultRoutes is the site's static route set.
var DefaultRoutes = []Route{
	{Path: "/", Page: PageHome},
	{Path: "/analytics", Page: PageAnalytics},
	{Path: "/resources", Page: PageResources},
	{Path: "/privacy", Page: PagePrivacy},
	{Path: "/terms", Page: PageTerms},
	{Path: "/contact", Page: PageContact},
}

// RouteTable resolves request paths to routes. It is immutable once built.
type RouteTable struct {
	routes []Route
	byPath map[string]Route
	home   Route
}

// Resolution is the outcome of resolving a requested path.
type Resolution struct {
	Route     Route
	Requested string // path as requested, before any fallback
	Fallback  bool   // true when Requested matched no route
}

// NewRouteTable validates routes and builds a table.
// Paths must be unique, start with "/" and exactly one route must be "/".
func NewRouteTable(routes []Route) (*RouteTable, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("route table is empty")
	}

	t := &RouteTable{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}

	roots := 0
	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %q: path must start with /", r.Path)
		}
		if r.Page == "" {
			return nil, fmt.Errorf("route %q: missing page", r.Path)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("route %q: duplicate path", r.Path)
		}
		if r.Path == RootPath {
			roots++
			t.home = r
		}
		t.byPath[r.Path] = r
		t.routes = append(t.routes, r)
	}

	if roots != 1 {
		return nil, fmt.Errorf("route table must contain exactly one %q route, got %d", RootPath, roots)
	}

	return t, nil
}

// MustRouteTable is NewRouteTable for static route sets; it panics on error.
func MustRouteTable(routes []Route) *RouteTable {
	t, err := NewRouteTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the route whose path equals path exactly. Link
// validation relies on it, so an empty path never matches.
func (t *RouteTable) Resolve(path string) (Route, bool) {
	r, ok := t.byPath[path]
	return r, ok
}

// ResolveOrFallback resolves a navigation to path, falling back to the home
// route when nothing matches. An empty request path means the root.
func (t *RouteTable) ResolveOrFallback(path string) Resolution {
	target := path
	if target == "" {
		target = RootPath
	}
	if r, ok := t.Resolve(target); ok {
		return Resolution{Route: r, Requested: path}
	}
	return Resolution{Route: t.home, Requested: path, Fallback: true}
}

// Home returns the root route.
func (t *RouteTable) Home() Route { return t.home }

// Routes returns a copy of the routes in declaration order.
func (t *RouteTable) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
