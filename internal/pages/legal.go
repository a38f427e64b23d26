package pages

import (
	"fmt"

	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Legal is a static prose page: Privacy Policy or Terms of Service.
type Legal struct {
	Meta
	Page       domain.PageID
	Heading    string
	Paragraphs []string // markdown
}

func (l *Legal) ID() domain.PageID { return l.Page }

func (l *Legal) Validate(LinkChecker) error {
	if l.Page != domain.PagePrivacy && l.Page != domain.PageTerms {
		return fmt.Errorf("legal: unexpected page id %q", l.Page)
	}
	if len(l.Paragraphs) == 0 {
		return fmt.Errorf("legal %s: no paragraphs", l.Page)
	}
	return nil
}
