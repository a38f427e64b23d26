package content

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default/site.yaml
var defaultSite []byte

// Document is a parsed content file with the revision of its raw bytes.
type Document struct {
	Site     SiteFile
	Revision string
	Source   string
}

// Loader handles loading and parsing of the site content file
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty path loads the built-in content.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the configured file path, empty for built-in content.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the content file
func (l *Loader) Load() (Document, error) {
	data := defaultSite
	source := "embedded"

	if l.filePath != "" {
		raw, err := os.ReadFile(l.filePath)
		if err != nil {
			return Document{}, fmt.Errorf("failed to read content file: %w", err)
		}
		data = raw
		source = l.filePath
	}

	return Parse(data, source)
}

// Parse decodes raw YAML. Unknown keys are rejected so typos in the content
// file surface at load time.
func Parse(data []byte, source string) (Document, error) {
	var site SiteFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return Document{}, fmt.Errorf("failed to parse content yaml: %w", err)
	}

	return Document{
		Site:     site,
		Revision: Revision(data),
		Source:   source,
	}, nil
}

// Default returns the raw built-in content.
func Default() []byte {
	out := make([]byte, len(defaultSite))
	copy(out, defaultSite)
	return out
}

// Revision is a short content hash used to key rendered pages.
func Revision(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}
