package pages

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Video is the campaign video shown in the Home modal.
type Video struct {
	ButtonLabel string
	EmbedURL    string
	FrameTitle  string
}

// Home is the landing page: hero with the campaign video, an introduction
// and cards pointing at Analytics and Resources.
type Home struct {
	Meta
	HeroTitle string
	HeroText  string
	Video     Video
	Intro     Card
	Cards     []Card
}

func (h *Home) ID() domain.PageID { return domain.PageHome }

func (h *Home) Validate(routes LinkChecker) error {
	if h.Video.EmbedURL != "" {
		u, err := url.Parse(h.Video.EmbedURL)
		if err != nil || u.Scheme != "https" {
			return fmt.Errorf("home: video url %q must be an https URL", h.Video.EmbedURL)
		}
	}
	for _, c := range h.Cards {
		if c.Button == nil {
			continue
		}
		if err := checkLink(*c.Button, routes); err != nil {
			return fmt.Errorf("home card %q: %w", c.Title, err)
		}
	}
	return nil
}
