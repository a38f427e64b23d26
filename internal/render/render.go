// Package render turns a composed shell view into an HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/MrSnakeDoc/awareness/internal/charts"
	"github.com/MrSnakeDoc/awareness/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ChartJSURL is the Chart.js bundle loaded by the Analytics page.
const ChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// pageTemplates maps each page to the file defining its "content" block.
var pageTemplates = map[domain.PageID]string{
	domain.PageHome:      "home.tmpl",
	domain.PageAnalytics: "analytics.tmpl",
	domain.PageResources: "resources.tmpl",
	domain.PagePrivacy:   "legal.tmpl",
	domain.PageTerms:     "legal.tmpl",
	domain.PageContact:   "contact.tmpl",
}

var layoutFiles = []string{
	"templates/base.tmpl",
	"templates/nav.tmpl",
	"templates/footer.tmpl",
}

// Options configures a Renderer.
type Options struct {
	SiteURL  string
	SiteName string // overrides the content's site name when set
	Minify   bool
	Now      func() time.Time
}

// Site is the per-snapshot branding passed with every view.
type Site struct {
	Name        string
	Brand       string
	Description string
}

// Data is what the templates execute against.
type Data struct {
	Site         Site
	View         domain.View
	Title        string
	Canonical    string
	Copyright    string
	VideoOpen    bool
	Static       bool
	MenuHref     string
	AssetVersion string
	ChartJSURL   string
}

// Request is one render request: a composed view plus the presentational
// query flags that came with it.
type Request struct {
	View      domain.View
	VideoOpen bool
	Static    bool // no server reads the query string, so links avoid it
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	pages    map[domain.PageID]*template.Template
	md       *Markdown
	minifier *minify.M
	minify   bool
	assets   *Assets
	siteURL  string
	siteName string
	now      func() time.Time
}

// New parses every page template once.
func New(opts Options) (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)

	r := &Renderer{
		pages:    make(map[domain.PageID]*template.Template, len(pageTemplates)),
		md:       NewMarkdown(),
		minifier: m,
		minify:   opts.Minify,
		siteURL:  strings.TrimRight(opts.SiteURL, "/"),
		siteName: opts.SiteName,
		now:      opts.Now,
	}
	if r.now == nil {
		r.now = time.Now
	}

	var assetMinifier *minify.M
	if opts.Minify {
		assetMinifier = m
	}
	assets, err := loadAssets(assetMinifier)
	if err != nil {
		return nil, err
	}
	r.assets = assets

	layout, err := template.New("layout").Funcs(r.funcs()).ParseFS(templateFS, layoutFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}

	for id, file := range pageTemplates {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", id, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[id] = t
	}

	return r, nil
}

// Assets exposes the static files referenced by the layout.
func (r *Renderer) Assets() *Assets { return r.assets }

// Render writes the document for req to w.
func (r *Renderer) Render(w io.Writer, site Site, req Request) error {
	v := req.View
	if v.Page == nil {
		return fmt.Errorf("render: view has no page")
	}

	t, ok := r.pages[v.Route.Page]
	if !ok {
		return fmt.Errorf("render: no template for page %q", v.Route.Page)
	}
	if r.siteName != "" {
		site.Name = r.siteName
	}

	data := Data{
		Site:         site,
		View:         v,
		Title:        title(v.Page.Title(), site.Name),
		Canonical:    r.canonical(v.Route.Path),
		Copyright:    v.Footer.Copyright(r.now()),
		VideoOpen:    req.VideoOpen && v.Route.Page == domain.PageHome && !req.Static,
		Static:       req.Static,
		MenuHref:     MenuHref(v.Requested, v.Menu, req.VideoOpen),
		AssetVersion: r.assets.Version(),
		ChartJSURL:   ChartJSURL,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute template for %s: %w", v.Route.Page, err)
	}

	if !r.minify {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := r.minifier.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("failed to minify %s: %w", v.Route.Page, err)
	}
	return nil
}

func (r *Renderer) canonical(path string) string {
	if r.siteURL == "" {
		return ""
	}
	return r.siteURL + path
}

func title(page, site string) string {
	if page == "" {
		return site
	}
	return page + " | " + site
}

// MenuHref is the link that toggles the mobile menu while staying on path.
func MenuHref(path string, menu domain.MenuState, videoOpen bool) string {
	if path == "" {
		path = domain.RootPath
	}
	q := url.Values{}
	if !menu.IsOpen() {
		q.Set("menu", "open")
	}
	if videoOpen {
		q.Set("video", "open")
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": r.md.HTML,
		"inline":   r.md.Inline,
		"chartConfig": func(c charts.Chart) (string, error) {
			raw, err := c.Config()
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
		"humanizeNumber": func(f float64) string {
			return humanize.Commaf(f)
		},
		"humanizeTotal": func(c charts.Chart) string {
			return humanize.Commaf(c.Total())
		},
	}
}
