package pages

import (
	"fmt"

	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Field is one input of the contact form.
type Field struct {
	Name        string
	Label       string
	Type        string // text, email or textarea
	Placeholder string
	Rows        int
}

// Contact renders a presentational form. There is no submission target.
type Contact struct {
	Meta
	Heading     string
	Fields      []Field
	SubmitLabel string
	InfoTitle   string
	Info        []Stat
	HoursTitle  string
	Hours       []Stat
}

func (c *Contact) ID() domain.PageID { return domain.PageContact }

func (c *Contact) Validate(LinkChecker) error {
	seen := make(map[string]struct{}, len(c.Fields))
	for _, f := range c.Fields {
		switch f.Type {
		case "text", "email", "textarea":
		default:
			return fmt.Errorf("contact field %q: unsupported type %q", f.Name, f.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("contact field %q: duplicate name", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
