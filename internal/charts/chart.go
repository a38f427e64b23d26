// Package charts describes the Analytics charts and serialises them to the
// configuration object Chart.js expects in the browser.
package charts

import (
	"encoding/json"
	"fmt"
)

// Kind is a Chart.js chart type.
type Kind string

const (
	Line     Kind = "line"
	Bar      Kind = "bar"
	Pie      Kind = "pie"
	Doughnut Kind = "doughnut"
)

func (k Kind) valid() bool {
	switch k {
	case Line, Bar, Pie, Doughnut:
		return true
	}
	return false
}

// Dataset is one data series.
type Dataset struct {
	Label           string    `yaml:"label" json:"label"`
	Data            []float64 `yaml:"data" json:"data"`
	BorderColor     []string  `yaml:"border_color,omitempty" json:"-"`
	BackgroundColor []string  `yaml:"background_color,omitempty" json:"-"`
	Fill            bool      `yaml:"fill,omitempty" json:"fill,omitempty"`
	Tension         float64   `yaml:"tension,omitempty" json:"tension,omitempty"`
}

// Options covers the subset of Chart.js options the site uses.
type Options struct {
	Horizontal     bool    `yaml:"horizontal,omitempty"`
	LegendPosition string  `yaml:"legend_position,omitempty"`
	HideLegend     bool    `yaml:"hide_legend,omitempty"`
	BeginAtZero    bool    `yaml:"begin_at_zero,omitempty"`
	Max            float64 `yaml:"max,omitempty"`
	PercentTicks   bool    `yaml:"percent_ticks,omitempty"`
}

// Chart is a titled chart with its labels and datasets.
type Chart struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Kind     Kind      `yaml:"kind"`
	Labels   []string  `yaml:"labels"`
	Datasets []Dataset `yaml:"datasets"`
	Options  Options   `yaml:"options,omitempty"`
	Source   string    `yaml:"source,omitempty"`
	Note     string    `yaml:"note,omitempty"`
}

// Validate checks the chart is renderable: a known kind, at least one
// dataset, one value per label and colour lists of length 0, 1 or len(labels).
func (c Chart) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chart %q: missing id", c.Title)
	}
	if !c.Kind.valid() {
		return fmt.Errorf("chart %q: unknown kind %q", c.ID, c.Kind)
	}
	if len(c.Labels) == 0 {
		return fmt.Errorf("chart %q: no labels", c.ID)
	}
	if len(c.Datasets) == 0 {
		return fmt.Errorf("chart %q: no datasets", c.ID)
	}
	for i, ds := range c.Datasets {
		if len(ds.Data) != len(c.Labels) {
			return fmt.Errorf("chart %q: dataset %d has %d values for %d labels",
				c.ID, i, len(ds.Data), len(c.Labels))
		}
		if err := checkColors(len(c.Labels), ds.BorderColor); err != nil {
			return fmt.Errorf("chart %q: dataset %d border: %w", c.ID, i, err)
		}
		if err := checkColors(len(c.Labels), ds.BackgroundColor); err != nil {
			return fmt.Errorf("chart %q: dataset %d background: %w", c.ID, i, err)
		}
	}
	return nil
}

func checkColors(labels int, colors []string) error {
	switch len(colors) {
	case 0, 1, labels:
		return nil
	}
	return fmt.Errorf("%d colours for %d labels", len(colors), labels)
}

// ShowsTotal reports whether the chart shows parts of a whole.
func (c Chart) ShowsTotal() bool { return c.Kind == Pie || c.Kind == Doughnut }

// Total sums the first dataset.
func (c Chart) Total() float64 {
	if len(c.Datasets) == 0 {
		return 0
	}
	var sum float64
	for _, v := range c.Datasets[0].Data {
		sum += v
	}
	return sum
}

// Config returns the Chart.js configuration as JSON.
func (c Chart) Config() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c.config())
}

type jsDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type jsConfig struct {
	Type string `json:"type"`
	Data struct {
		Labels   []string    `json:"labels"`
		Datasets []jsDataset `json:"datasets"`
	} `json:"data"`
	Options map[string]any `json:"options"`
}

func (c Chart) config() jsConfig {
	var cfg jsConfig
	cfg.Type = string(c.Kind)
	cfg.Data.Labels = c.Labels
	for _, ds := range c.Datasets {
		cfg.Data.Datasets = append(cfg.Data.Datasets, jsDataset{
			Label:           ds.Label,
			Data:            ds.Data,
			BorderColor:     colorValue(ds.BorderColor),
			BackgroundColor: colorValue(ds.BackgroundColor),
			Fill:            ds.Fill,
			Tension:         ds.Tension,
		})
	}

	opts := map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
	}
	legend := map[string]any{}
	if c.Options.HideLegend {
		legend["display"] = false
	}
	if c.Options.LegendPosition != "" {
		legend["position"] = c.Options.LegendPosition
	}
	if len(legend) > 0 {
		opts["plugins"] = map[string]any{"legend": legend}
	}
	if c.Options.Horizontal {
		opts["indexAxis"] = "y"
	}

	if c.Kind == Line || c.Kind == Bar {
		valueAxis := map[string]any{}
		if c.Options.BeginAtZero {
			valueAxis["beginAtZero"] = true
		}
		if c.Options.Max > 0 {
			valueAxis["max"] = c.Options.Max
		}
		if c.Options.PercentTicks {
			// Resolved to a callback by charts.js on the client.
			valueAxis["ticks"] = map[string]any{"format": "percent"}
		}
		if len(valueAxis) > 0 {
			axis := "y"
			if c.Options.Horizontal {
				axis = "x"
			}
			opts["scales"] = map[string]any{axis: valueAxis}
		}
	}

	cfg.Options = opts
	return cfg
}

// A single colour is emitted as a string so Chart.js applies it to the whole
// series instead of the first point only.
func colorValue(colors []string) any {
	switch len(colors) {
	case 0:
		return nil
	case 1:
		return colors[0]
	}
	return colors
}
