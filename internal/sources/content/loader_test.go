package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	doc, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Source != "embedded" {
		t.Errorf("Source = %q, want embedded", doc.Source)
	}
	if doc.Site.Site.Name != "Racism Awareness" {
		t.Errorf("site name = %q", doc.Site.Site.Name)
	}
	if len(doc.Site.Pages.Analytics.Charts) != 3 {
		t.Errorf("analytics charts = %d, want 3", len(doc.Site.Pages.Analytics.Charts))
	}
	if len(doc.Revision) != 12 {
		t.Errorf("Revision = %q, want 12 hex chars", doc.Revision)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "site.yaml")

	if err := os.WriteFile(yamlPath, Default(), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	doc, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Source != yamlPath {
		t.Errorf("Source = %q, want %q", doc.Source, yamlPath)
	}

	embedded, _ := NewLoader("").Load()
	if doc.Revision != embedded.Revision {
		t.Errorf("same bytes should give same revision: %q vs %q", doc.Revision, embedded.Revision)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/site.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("site:\n  name: x\n  colour: red\n"), "test")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "failed to parse content yaml") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRevisionChangesWithContent(t *testing.T) {
	a := Revision([]byte("a"))
	b := Revision([]byte("b"))
	if a == b {
		t.Error("different content should produce different revisions")
	}
	if a != Revision([]byte("a")) {
		t.Error("revision should be deterministic")
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	d := Default()
	d[0] = '#'
	if Default()[0] == '#' {
		t.Error("Default() must not expose the embedded buffer")
	}
}
