// Package pages holds the content of every page of the site. Pages are plain
// values built from the content file; they carry no state between requests.
package pages

import (
	"fmt"

	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Meta is shared page metadata.
type Meta struct {
	PageTitle       string
	PageDescription string
}

func (m Meta) Title() string       { return m.PageTitle }
func (m Meta) Description() string { return m.PageDescription }

// Link is an internal path or an absolute external URL.
type Link struct {
	Label    string
	Href     string
	External bool
}

// Card is a titled block of prose, optionally with a call to action.
type Card struct {
	Title  string
	Body   string // markdown
	Button *Link
}

// Stat is a labelled value (key finding, survey detail, office hours).
type Stat struct {
	Label  string
	Value  string
	Detail string
}

// LinkChecker resolves internal links. *domain.RouteTable satisfies it.
type LinkChecker interface {
	Resolve(path string) (domain.Route, bool)
}

func checkLink(l Link, routes LinkChecker) error {
	if l.Href == "" {
		return fmt.Errorf("link %q: missing href", l.Label)
	}
	if l.External {
		return nil
	}
	if _, ok := routes.Resolve(l.Href); !ok {
		return fmt.Errorf("link %q: no route for %q", l.Label, l.Href)
	}
	return nil
}

// Validator is implemented by pages that reference other routes or data
// that must be checked at load time.
type Validator interface {
	Validate(routes LinkChecker) error
}
