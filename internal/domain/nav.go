package domain

import "fmt"

// NavEntry is a route exposed in the primary navigation bar.
type NavEntry struct {
	Path  string
	Label string
}

// NavItem is a NavEntry with its active state for one navigation.
type NavItem struct {
	NavEntry
	Active bool
}

// PrimaryNav is the visible navigation. Privacy, Terms and Contact are only
// reachable from the footer.
var PrimaryNav = []NavEntry{
	{Path: "/", Label: "Home"},
	{Path: "/analytics", Label: "Analytics"},
	{Path: "/resources", Label: "Resources"},
}

// NavBar owns the navigation entries and the mobile menu state.
type NavBar struct {
	entries []NavEntry
	menu    MenuState
}

// NewNavBar checks that every entry points at a known route.
func NewNavBar(entries []NavEntry, routes *RouteTable) (*NavBar, error) {
	for _, e := range entries {
		if _, ok := routes.Resolve(e.Path); !ok {
			return nil, fmt.Errorf("nav entry %q: no route for %q", e.Label, e.Path)
		}
	}
	cp := make([]NavEntry, len(entries))
	copy(cp, entries)
	return &NavBar{entries: cp, menu: MenuClosed}, nil
}

// Items derives the nav items for currentPath. Nothing is cached.
func (n *NavBar) Items(currentPath string) []NavItem {
	if currentPath == "" {
		currentPath = RootPath
	}
	items := make([]NavItem, 0, len(n.entries))
	for _, e := range n.entries {
		items = append(items, NavItem{NavEntry: e, Active: e.Path == currentPath})
	}
	return items
}

// Menu returns the current menu state.
func (n *NavBar) Menu() MenuState { return n.menu }

// ToggleMenu flips the menu state and returns the new state.
func (n *NavBar) ToggleMenu() MenuState {
	n.menu = n.menu.Toggle()
	return n.menu
}

// CloseMenu closes the menu. Following any link closes it.
func (n *NavBar) CloseMenu() { n.menu = MenuClosed }

// Select follows entry: the menu closes and the entry's path is returned for
// navigation.
func (n *NavBar) Select(entry NavEntry) string {
	n.menu = MenuClosed
	return entry.Path
}

// Entry looks up a nav entry by label.
func (n *NavBar) Entry(label string) (NavEntry, bool) {
	for _, e := range n.entries {
		if e.Label == label {
			return e, true
		}
	}
	return NavEntry{}, false
}
