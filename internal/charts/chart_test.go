package charts

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validChart() Chart {
	return Chart{
		ID:     "discrimination",
		Title:  "Discrimination Types (2023)",
		Kind:   Pie,
		Labels: []string{"Racism Related", "Other Forms"},
		Datasets: []Dataset{{
			Label:           "Cases",
			Data:            []float64{316, 315},
			BackgroundColor: []string{"rgba(219, 39, 119, 0.8)", "rgba(236, 72, 153, 0.8)"},
		}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Chart)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Chart) {}},
		{name: "unknown kind", mutate: func(c *Chart) { c.Kind = "radar" }, wantErr: true},
		{name: "missing id", mutate: func(c *Chart) { c.ID = "" }, wantErr: true},
		{name: "no labels", mutate: func(c *Chart) { c.Labels = nil }, wantErr: true},
		{name: "no datasets", mutate: func(c *Chart) { c.Datasets = nil }, wantErr: true},
		{
			name:    "value count mismatch",
			mutate:  func(c *Chart) { c.Datasets[0].Data = []float64{1} },
			wantErr: true,
		},
		{
			name:   "single colour",
			mutate: func(c *Chart) { c.Datasets[0].BackgroundColor = []string{"red"} },
		},
		{
			name: "bad colour count",
			mutate: func(c *Chart) {
				c.Labels = append(c.Labels, "Third")
				c.Datasets[0].Data = append(c.Datasets[0].Data, 1)
				c.Datasets[0].BackgroundColor = []string{"a", "b"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validChart()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	c := Chart{
		ID:     "trend",
		Title:  "Annual Racism Cases Trend",
		Kind:   Line,
		Labels: []string{"2021", "2022"},
		Datasets: []Dataset{{
			Label:           "Reported Cases",
			Data:            []float64{350, 490},
			BorderColor:     []string{"rgb(219, 39, 119)"},
			BackgroundColor: []string{"rgba(219, 39, 119, 0.1)"},
			Fill:            true,
			Tension:         0.4,
		}},
		Options: Options{BeginAtZero: true},
	}

	raw, err := c.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["type"] != "line" {
		t.Errorf("type = %v, want line", got["type"])
	}

	data := got["data"].(map[string]any)
	ds := data["datasets"].([]any)[0].(map[string]any)
	if ds["borderColor"] != "rgb(219, 39, 119)" {
		t.Errorf("single border colour should serialise as string, got %v", ds["borderColor"])
	}
	if ds["tension"] != 0.4 {
		t.Errorf("tension = %v", ds["tension"])
	}

	scales := got["options"].(map[string]any)["scales"].(map[string]any)
	want := map[string]any{"y": map[string]any{"beginAtZero": true}}
	if diff := cmp.Diff(want, scales); diff != "" {
		t.Errorf("scales mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigHorizontalPercent(t *testing.T) {
	c := Chart{
		ID:     "risk",
		Title:  "Social Impact",
		Kind:   Bar,
		Labels: []string{"At Risk of Poverty", "Severe Deprivation", "Not at Risk"},
		Datasets: []Dataset{{
			Label: "Percentage of Population",
			Data:  []float64{26.5, 9, 64.5},
		}},
		Options: Options{Horizontal: true, Max: 100, PercentTicks: true, BeginAtZero: true},
	}

	raw, err := c.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	var got struct {
		Options struct {
			IndexAxis string                    `json:"indexAxis"`
			Scales    map[string]map[string]any `json:"scales"`
		} `json:"options"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Options.IndexAxis != "y" {
		t.Errorf("indexAxis = %q, want y", got.Options.IndexAxis)
	}
	x, ok := got.Options.Scales["x"]
	if !ok {
		t.Fatalf("expected x scale for horizontal bar, got %v", got.Options.Scales)
	}
	if x["max"] != float64(100) {
		t.Errorf("max = %v, want 100", x["max"])
	}
}

func TestConfigRejectsInvalid(t *testing.T) {
	c := validChart()
	c.Kind = "scatter"
	if _, err := c.Config(); err == nil {
		t.Fatal("expected error for invalid chart")
	}
}

func TestTotal(t *testing.T) {
	if got := validChart().Total(); got != 631 {
		t.Errorf("Total = %v, want 631", got)
	}
	if got := (Chart{}).Total(); got != 0 {
		t.Errorf("empty Total = %v", got)
	}
}

func TestShowsTotal(t *testing.T) {
	for kind, want := range map[Kind]bool{Line: false, Bar: false, Pie: true, Doughnut: true} {
		if got := (Chart{Kind: kind}).ShowsTotal(); got != want {
			t.Errorf("ShowsTotal(%s) = %v, want %v", kind, got, want)
		}
	}
}
