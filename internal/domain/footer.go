package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FooterLink is a link rendered in the footer.
type FooterLink struct {
	Label    string
	Href     string
	External bool
}

// Footer is the site footer. It is stateless; the copyright year is
// computed at render time.
type Footer struct {
	AboutTitle      string
	About           string
	QuickLinksTitle string
	QuickLinks      []FooterLink
	SocialTitle     string
	SocialLinks     []FooterLink
	CopyrightFmt    string // e.g. "© %d Racism Awareness Project. All rights reserved."
}

// Validate checks internal links against routes and external links for an
// absolute http(s) URL.
func (f Footer) Validate(routes *RouteTable) error {
	check := func(l FooterLink) error {
		if l.Label == "" {
			return fmt.Errorf("footer link %q: missing label", l.Href)
		}
		if l.External {
			u, err := url.Parse(l.Href)
			if err != nil {
				return fmt.Errorf("footer link %q: %w", l.Label, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
				return fmt.Errorf("footer link %q: external href %q must be an absolute http(s) URL", l.Label, l.Href)
			}
			return nil
		}
		if _, ok := routes.Resolve(l.Href); !ok {
			return fmt.Errorf("footer link %q: no route for %q", l.Label, l.Href)
		}
		return nil
	}

	for _, l := range f.QuickLinks {
		if err := check(l); err != nil {
			return err
		}
	}
	for _, l := range f.SocialLinks {
		if err := check(l); err != nil {
			return err
		}
	}
	if !strings.Contains(f.CopyrightFmt, "%d") {
		return fmt.Errorf("footer copyright %q: missing %%d year verb", f.CopyrightFmt)
	}
	return nil
}

// Copyright renders the copyright line for the year of now.
func (f Footer) Copyright(now time.Time) string {
	return fmt.Sprintf(f.CopyrightFmt, now.Year())
}
