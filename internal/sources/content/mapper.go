package content

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/pages"
)

// Bundle is the mapped, validated content of one Document.
type Bundle struct {
	Name        string
	Brand       string
	Description string
	Nav         []domain.NavEntry
	Footer      domain.Footer
	Registry    *domain.Registry
	Revision    string
}

// Mapper converts a SiteFile into domain values checked against a route table.
type Mapper struct {
	routes *domain.RouteTable
}

// NewMapper creates a new mapper instance
func NewMapper(routes *domain.RouteTable) *Mapper {
	return &Mapper{routes: routes}
}

// Map converts doc into a Bundle. Any dangling link or invalid chart fails
// the whole mapping.
func (m *Mapper) Map(doc Document) (*Bundle, error) {
	s := doc.Site

	if strings.TrimSpace(s.Site.Name) == "" {
		return nil, fmt.Errorf("site name is required")
	}

	nav := make([]domain.NavEntry, 0, len(s.Nav))
	for _, l := range s.Nav {
		nav = append(nav, domain.NavEntry{Path: l.Href, Label: l.Label})
	}
	if len(nav) == 0 {
		nav = domain.PrimaryNav
	}
	if _, err := domain.NewNavBar(nav, m.routes); err != nil {
		return nil, err
	}

	footer := domain.Footer{
		AboutTitle:      s.Footer.AboutTitle,
		About:           s.Footer.About,
		QuickLinksTitle: s.Footer.QuickLinksTitle,
		QuickLinks:      footerLinks(s.Footer.QuickLinks),
		SocialTitle:     s.Footer.SocialTitle,
		SocialLinks:     footerLinks(s.Footer.SocialLinks),
		CopyrightFmt:    s.Footer.Copyright,
	}
	if err := footer.Validate(m.routes); err != nil {
		return nil, err
	}

	all := []domain.Page{
		mapHome(s.Pages.Home),
		mapAnalytics(s.Pages.Analytics),
		mapResources(s.Pages.Resources),
		mapLegal(domain.PagePrivacy, s.Pages.Privacy),
		mapLegal(domain.PageTerms, s.Pages.Terms),
		mapContact(s.Pages.Contact),
	}
	for _, p := range all {
		if v, ok := p.(pages.Validator); ok {
			if err := v.Validate(m.routes); err != nil {
				return nil, err
			}
		}
	}

	registry, err := domain.NewRegistry(all...)
	if err != nil {
		return nil, err
	}
	if err := registry.CheckRoutes(m.routes); err != nil {
		return nil, err
	}

	return &Bundle{
		Name:        s.Site.Name,
		Brand:       s.Site.Brand,
		Description: s.Site.Description,
		Nav:         nav,
		Footer:      footer,
		Registry:    registry,
		Revision:    doc.Revision,
	}, nil
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

func footerLinks(in []LinkProps) []domain.FooterLink {
	out := make([]domain.FooterLink, 0, len(in))
	for _, l := range in {
		out = append(out, domain.FooterLink{Label: l.Label, Href: l.Href, External: isExternal(l.Href)})
	}
	return out
}

func link(l LinkProps) pages.Link {
	return pages.Link{Label: l.Label, Href: l.Href, External: isExternal(l.Href)}
}

func meta(m MetaProps) pages.Meta {
	return pages.Meta{PageTitle: m.Title, PageDescription: m.Description}
}

func card(c CardProps) pages.Card {
	out := pages.Card{Title: c.Title, Body: c.Body}
	if c.Button != nil {
		l := link(*c.Button)
		out.Button = &l
	}
	return out
}

func cards(in []CardProps) []pages.Card {
	out := make([]pages.Card, 0, len(in))
	for _, c := range in {
		out = append(out, card(c))
	}
	return out
}

func stats(in []StatProps) []pages.Stat {
	out := make([]pages.Stat, 0, len(in))
	for _, s := range in {
		out = append(out, pages.Stat{Label: s.Label, Value: s.Value, Detail: s.Detail})
	}
	return out
}

func mapHome(p HomeProps) *pages.Home {
	return &pages.Home{
		Meta:      meta(p.MetaProps),
		HeroTitle: p.Hero.Title,
		HeroText:  p.Hero.Text,
		Video: pages.Video{
			ButtonLabel: p.Video.Button,
			EmbedURL:    p.Video.URL,
			FrameTitle:  p.Video.FrameTitle,
		},
		Intro: card(p.Intro),
		Cards: cards(p.Cards),
	}
}

func mapAnalytics(p AnalyticsProps) *pages.Analytics {
	return &pages.Analytics{
		Meta:     meta(p.MetaProps),
		Heading:  p.Heading,
		Subtitle: p.Subtitle,
		Findings: stats(p.Findings),
		Charts:   p.Charts,
		Impact:   cards(p.Impact),
		Understand: pages.Section{
			Title:      p.Understand.Title,
			Paragraphs: p.Understand.Paragraphs,
		},
		Survey: pages.Survey{
			Title:     p.Survey.Title,
			Charts:    p.Survey.Charts,
			Details:   stats(p.Survey.Details),
			Ethnicity: stats(p.Survey.Ethnicity),
		},
	}
}

func mapResources(p ResourcesProps) *pages.Resources {
	return &pages.Resources{
		Meta:    meta(p.MetaProps),
		Heading: p.Heading,
		Body:    p.Body,
		Action:  link(p.Action),
	}
}

func mapLegal(id domain.PageID, p LegalProps) *pages.Legal {
	return &pages.Legal{
		Meta:       meta(p.MetaProps),
		Page:       id,
		Heading:    p.Heading,
		Paragraphs: p.Paragraphs,
	}
}

func mapContact(p ContactProps) *pages.Contact {
	fields := make([]pages.Field, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, pages.Field{
			Name:        f.Name,
			Label:       f.Label,
			Type:        f.Type,
			Placeholder: f.Placeholder,
			Rows:        f.Rows,
		})
	}
	return &pages.Contact{
		Meta:        meta(p.MetaProps),
		Heading:     p.Heading,
		Fields:      fields,
		SubmitLabel: p.Submit,
		InfoTitle:   p.InfoTitle,
		Info:        stats(p.Info),
		HoursTitle:  p.HoursTitle,
		Hours:       stats(p.Hours),
	}
}
