package domain

// MenuState is the collapsed (mobile) navigation menu state.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// IsOpen reports whether the menu is open.
func (s MenuState) IsOpen() bool { return s == MenuOpen }

// ParseMenuState maps the "menu" query value to a state. Anything other
// than "open" is closed.
func ParseMenuState(v string) MenuState {
	if v == "open" {
		return MenuOpen
	}
	return MenuClosed
}

// Toggle flips the state.
func (s MenuState) Toggle() MenuState {
	if s == MenuOpen {
		return MenuClosed
	}
	return MenuOpen
}
