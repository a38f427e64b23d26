package domain

import (
	"fmt"
	"sync"
)

// View is one composed frame of the shell: navigation bar, page and footer,
// all derived from the same resolution. It is a value; callers may keep it
// after the shell moves on.
type View struct {
	Nav       []NavItem
	Menu      MenuState
	Route     Route
	Page      Page
	Footer    Footer
	Requested string
	Fallback  bool
}

// Shell is the application shell. It owns the current route and the nav bar
// but never any page state.
type Shell struct {
	mu       sync.Mutex
	routes   *RouteTable
	registry *Registry
	footer   Footer
	nav      *NavBar
	current  Resolution
}

// NewShell wires the shell collaborators and mounts it at the root route.
func NewShell(routes *RouteTable, registry *Registry, nav []NavEntry, footer Footer) (*Shell, error) {
	if routes == nil || registry == nil {
		return nil, fmt.Errorf("shell: routes and registry are required")
	}
	if err := registry.CheckRoutes(routes); err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	bar, err := NewNavBar(nav, routes)
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	return &Shell{
		routes:   routes,
		registry: registry,
		footer:   footer,
		nav:      bar,
		current:  routes.ResolveOrFallback(RootPath),
	}, nil
}

// Navigate resolves path and composes a view for it. Navigation closes the
// mobile menu.
func (s *Shell) Navigate(path string) View {
	res := s.routes.ResolveOrFallback(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = res
	s.nav.CloseMenu()
	return s.composeLocked()
}

// Follow navigates to a nav entry the way a click on it would.
func (s *Shell) Follow(entry NavEntry) View {
	s.mu.Lock()
	path := s.nav.Select(entry)
	s.mu.Unlock()
	return s.Navigate(path)
}

// ToggleMenu flips the mobile menu without re-resolving.
func (s *Shell) ToggleMenu() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nav.ToggleMenu()
	return s.composeLocked()
}

// SetMenu forces the menu state. Used when the state arrives with the
// request instead of from a toggle.
func (s *Shell) SetMenu(state MenuState) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nav.Menu() != state {
		s.nav.ToggleMenu()
	}
	return s.composeLocked()
}

// View returns the current view.
func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composeLocked()
}

func (s *Shell) composeLocked() View {
	// Active state follows the resolved route, so a fallback to Home
	// highlights Home rather than nothing.
	page, _ := s.registry.Get(s.current.Route.Page)
	return View{
		Nav:       s.nav.Items(s.current.Route.Path),
		Menu:      s.nav.Menu(),
		Route:     s.current.Route,
		Page:      page,
		Footer:    s.footer,
		Requested: s.current.Requested,
		Fallback:  s.current.Fallback,
	}
}
