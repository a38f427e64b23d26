package domain

import "fmt"

// Page is a renderable site page. Content lives in the concrete types of
// the pages package; the domain only needs identity and metadata.
type Page interface {
	ID() PageID
	Title() string
	Description() string
}

// Registry maps every PageID to its page.
type Registry struct {
	pages map[PageID]Page
}

// NewRegistry builds a registry and validates it.
func NewRegistry(pages ...Page) (*Registry, error) {
	r := &Registry{pages: make(map[PageID]Page, len(pages))}
	for _, p := range pages {
		if p == nil {
			return nil, fmt.Errorf("registry: nil page")
		}
		if _, dup := r.pages[p.ID()]; dup {
			return nil, fmt.Errorf("registry: duplicate page %q", p.ID())
		}
		r.pages[p.ID()] = p
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every PageID has a page.
func (r *Registry) Validate() error {
	for _, id := range AllPages {
		if _, ok := r.pages[id]; !ok {
			return fmt.Errorf("registry: missing page %q", id)
		}
	}
	return nil
}

// Get returns the page for id.
func (r *Registry) Get(id PageID) (Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// CheckRoutes ensures every route points at a registered page.
func (r *Registry) CheckRoutes(t *RouteTable) error {
	for _, rt := range t.Routes() {
		if _, ok := r.pages[rt.Page]; !ok {
			return fmt.Errorf("route %q: page %q is not registered", rt.Path, rt.Page)
		}
	}
	return nil
}
