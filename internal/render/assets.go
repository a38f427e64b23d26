package render

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/tdewolff/minify/v2"
)

//go:embed static/*
var staticFS embed.FS

// Asset is a static file served under /assets/.
type Asset struct {
	Name        string
	ContentType string
	Body        []byte
	ETag        string
}

var assetTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

// Assets holds the embedded static files, optionally minified.
type Assets struct {
	byName  map[string]Asset
	version string
}

func loadAssets(m *minify.M) (*Assets, error) {
	entries, err := fs.ReadDir(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to read static assets: %w", err)
	}

	a := &Assets{byName: make(map[string]Asset, len(entries))}
	versions := sha256.New()

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := staticFS.ReadFile(path.Join("static", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
		}

		ctype, ok := assetTypes[path.Ext(name)]
		if !ok {
			ctype = "application/octet-stream"
		}

		if m != nil {
			var out bytes.Buffer
			if err := m.Minify(ctype, &out, bytes.NewReader(body)); err != nil {
				return nil, fmt.Errorf("failed to minify asset %s: %w", name, err)
			}
			body = out.Bytes()
		}

		sum := sha256.Sum256(body)
		etag := `"` + hex.EncodeToString(sum[:8]) + `"`
		versions.Write(sum[:])

		a.byName[name] = Asset{
			Name:        name,
			ContentType: ctype + "; charset=utf-8",
			Body:        body,
			ETag:        etag,
		}
	}

	a.version = hex.EncodeToString(versions.Sum(nil)[:4])
	return a, nil
}

// Get returns the asset called name.
func (a *Assets) Get(name string) (Asset, bool) {
	asset, ok := a.byName[name]
	return asset, ok
}

// List returns all assets sorted by name.
func (a *Assets) List() []Asset {
	out := make([]Asset, 0, len(a.byName))
	for _, asset := range a.byName {
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Version changes whenever any asset changes; it busts browser caches.
func (a *Assets) Version() string { return a.version }
