package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNavBarItems(t *testing.T) {
	nav, err := NewNavBar(PrimaryNav, MustRouteTable(DefaultRoutes))
	if err != nil {
		t.Fatalf("NewNavBar: %v", err)
	}

	tests := []struct {
		path       string
		wantActive []bool
	}{
		{"/", []bool{true, false, false}},
		{"", []bool{true, false, false}},
		{"/analytics", []bool{false, true, false}},
		{"/resources", []bool{false, false, true}},
		{"/terms", []bool{false, false, false}},
		{"/contact", []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			items := nav.Items(tt.path)
			got := make([]bool, len(items))
			for i, it := range items {
				got[i] = it.Active
			}
			if diff := cmp.Diff(tt.wantActive, got); diff != "" {
				t.Errorf("active flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNavBarAtMostOneActive(t *testing.T) {
	nav, _ := NewNavBar(PrimaryNav, MustRouteTable(DefaultRoutes))

	for _, r := range DefaultRoutes {
		active := 0
		for _, it := range nav.Items(r.Path) {
			if it.Active {
				active++
			}
		}
		if active > 1 {
			t.Errorf("path %q: %d active items", r.Path, active)
		}
	}
}

func TestNavBarRejectsUnknownEntry(t *testing.T) {
	for _, path := range []string{"/blog", ""} {
		_, err := NewNavBar([]NavEntry{{Path: path, Label: "Blog"}}, MustRouteTable(DefaultRoutes))
		if err == nil {
			t.Errorf("NewNavBar(%q): expected error for entry without route", path)
		}
	}
}

func TestMenuStateMachine(t *testing.T) {
	nav, _ := NewNavBar(PrimaryNav, MustRouteTable(DefaultRoutes))

	if nav.Menu() != MenuClosed {
		t.Fatalf("initial menu = %v, want closed", nav.Menu())
	}
	if got := nav.ToggleMenu(); got != MenuOpen {
		t.Fatalf("toggle from closed = %v, want open", got)
	}
	if got := nav.ToggleMenu(); got != MenuClosed {
		t.Fatalf("toggle from open = %v, want closed", got)
	}

	nav.ToggleMenu()
	entry, ok := nav.Entry("Analytics")
	if !ok {
		t.Fatal("Analytics entry missing")
	}
	if path := nav.Select(entry); path != "/analytics" {
		t.Errorf("Select path = %q, want /analytics", path)
	}
	if nav.Menu() != MenuClosed {
		t.Error("menu should close after selecting an entry")
	}
}

func TestParseMenuState(t *testing.T) {
	tests := map[string]MenuState{
		"open":   MenuOpen,
		"":       MenuClosed,
		"closed": MenuClosed,
		"OPEN":   MenuClosed,
		"1":      MenuClosed,
	}
	for in, want := range tests {
		if got := ParseMenuState(in); got != want {
			t.Errorf("ParseMenuState(%q) = %v, want %v", in, got, want)
		}
	}
}
