package pages

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Resources points visitors at one external organisation.
type Resources struct {
	Meta
	Heading string
	Body    string // markdown
	Action  Link
}

func (r *Resources) ID() domain.PageID { return domain.PageResources }

func (r *Resources) Validate(LinkChecker) error {
	u, err := url.Parse(r.Action.Href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("resources: action %q must be an absolute URL", r.Action.Href)
	}
	return nil
}
