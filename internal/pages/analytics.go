package pages

import (
	"fmt"

	"github.com/MrSnakeDoc/awareness/internal/charts"
	"github.com/MrSnakeDoc/awareness/internal/domain"
)

// Section is a titled list of markdown paragraphs.
type Section struct {
	Title      string
	Paragraphs []string
}

// Survey groups the survey charts with their breakdowns.
type Survey struct {
	Title     string
	Charts    []charts.Chart
	Details   []Stat
	Ethnicity []Stat
}

// Analytics shows the pre-baked statistics. The datasets never change at
// runtime.
type Analytics struct {
	Meta
	Heading    string
	Subtitle   string
	Findings   []Stat
	Charts     []charts.Chart
	Impact     []Card
	Understand Section
	Survey     Survey
}

func (a *Analytics) ID() domain.PageID { return domain.PageAnalytics }

// AllCharts returns the main and survey charts in page order.
func (a *Analytics) AllCharts() []charts.Chart {
	out := make([]charts.Chart, 0, len(a.Charts)+len(a.Survey.Charts))
	out = append(out, a.Charts...)
	return append(out, a.Survey.Charts...)
}

func (a *Analytics) Validate(LinkChecker) error {
	seen := make(map[string]struct{})
	for _, c := range a.AllCharts() {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("analytics: %w", err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("analytics: duplicate chart id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
