package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/sources/content"
)

func fixedNow() time.Time { return time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC) }

func newShell(t *testing.T) (*domain.Shell, Site) {
	t.Helper()
	routes := domain.MustRouteTable(domain.DefaultRoutes)
	doc, err := content.NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bundle, err := content.NewMapper(routes).Map(doc)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	shell, err := domain.NewShell(routes, bundle.Registry, bundle.Nav, bundle.Footer)
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	return shell, Site{Name: bundle.Name, Brand: bundle.Brand, Description: bundle.Description}
}

func renderDoc(t *testing.T, minify bool, site Site, req Request) *html.Node {
	t.Helper()
	r, err := New(Options{Minify: minify, Now: fixedNow, SiteURL: "https://example.org/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, site, req); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestRenderEveryPage(t *testing.T) {
	shell, site := newShell(t)

	tests := []struct {
		path       string
		wantTitle  string
		wantActive string
		wantH1     string
	}{
		{"/", "Home | Racism Awareness", "Home", "Everyday Racism"},
		{"/analytics", "Analytics | Racism Awareness", "Analytics", "Racism Statistics in Spain"},
		{"/resources", "Resources | Racism Awareness", "Resources", "Want to Help?"},
		{"/privacy", "Privacy Policy | Racism Awareness", "", "Privacy Policy"},
		{"/terms", "Terms of Service | Racism Awareness", "", "Terms of Service"},
		{"/contact", "Contact Us | Racism Awareness", "", "Contact Us"},
	}

	for _, minify := range []bool{false, true} {
		for _, tt := range tests {
			t.Run(tt.path, func(t *testing.T) {
				doc := renderDoc(t, minify, site, Request{View: shell.Navigate(tt.path)})

				titles := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
				if len(titles) != 1 || text(titles[0]) != tt.wantTitle {
					t.Errorf("title = %v, want %q", titles, tt.wantTitle)
				}

				active := findAll(doc, func(n *html.Node) bool { return hasClass(n, "nav-link") && hasClass(n, "active") })
				if tt.wantActive == "" {
					if len(active) != 0 {
						t.Errorf("expected no active nav link, got %d", len(active))
					}
				} else if len(active) != 1 || text(active[0]) != tt.wantActive {
					t.Errorf("active nav = %v, want %q", active, tt.wantActive)
				}

				h1 := findAll(doc, func(n *html.Node) bool { return n.Data == "h1" })
				if len(h1) == 0 || text(h1[0]) != tt.wantH1 {
					t.Errorf("first h1 mismatch, want %q", tt.wantH1)
				}

				footer := findAll(doc, func(n *html.Node) bool { return hasClass(n, "copyright") })
				if len(footer) != 1 || !strings.HasPrefix(text(footer[0]), "© 2030 ") {
					t.Errorf("copyright line missing or wrong year")
				}
			})
		}
	}
}

func TestRenderMenu(t *testing.T) {
	shell, site := newShell(t)

	shell.Navigate("/analytics")
	closed := renderDoc(t, false, site, Request{View: shell.View()})
	if got := findAll(closed, func(n *html.Node) bool { return hasClass(n, "mobile-menu") }); len(got) != 0 {
		t.Error("closed menu should not render the mobile menu")
	}
	toggle := findAll(closed, func(n *html.Node) bool { return hasClass(n, "menu-toggle") })
	if href, _ := attr(toggle[0], "href"); href != "/analytics?menu=open" {
		t.Errorf("toggle href = %q", href)
	}

	open := renderDoc(t, false, site, Request{View: shell.ToggleMenu()})
	menu := findAll(open, func(n *html.Node) bool { return hasClass(n, "mobile-link") })
	if len(menu) != 3 {
		t.Fatalf("mobile links = %d, want 3", len(menu))
	}
	for _, l := range menu {
		if href, _ := attr(l, "href"); strings.Contains(href, "menu=") {
			t.Errorf("nav link %q must not carry the menu flag", href)
		}
	}
	toggle = findAll(open, func(n *html.Node) bool { return hasClass(n, "menu-toggle") })
	if href, _ := attr(toggle[0], "href"); href != "/analytics" {
		t.Errorf("close href = %q, want /analytics", href)
	}
}

func TestRenderAnalyticsCharts(t *testing.T) {
	shell, site := newShell(t)
	doc := renderDoc(t, true, site, Request{View: shell.Navigate("/analytics")})

	canvases := findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, "data-chart")
		return n.Data == "canvas" && ok
	})
	if len(canvases) != 5 {
		t.Fatalf("charts = %d, want 5", len(canvases))
	}

	kinds := map[string]int{}
	for _, c := range canvases {
		raw, _ := attr(c, "data-chart")
		var cfg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			t.Fatalf("invalid chart config %q: %v", raw, err)
		}
		kinds[cfg.Type]++
	}
	want := map[string]int{"line": 1, "pie": 1, "bar": 2, "doughnut": 1}
	for k, n := range want {
		if kinds[k] != n {
			t.Errorf("%s charts = %d, want %d", k, kinds[k], n)
		}
	}

	totals := map[string]string{}
	for _, fig := range findAll(doc, func(n *html.Node) bool { return n.Data == "figure" }) {
		id, _ := attr(fig, "id")
		for _, foot := range findAll(fig, func(n *html.Node) bool { return n.Data == "tfoot" }) {
			totals[id] = text(foot)
		}
	}
	wantTotals := map[string]string{
		"discrimination-types": "Total631",
		"racism-experience":    "Total100",
	}
	if len(totals) != len(wantTotals) {
		t.Errorf("chart totals = %v, want %v", totals, wantTotals)
	}
	for id, want := range wantTotals {
		if got := strings.Join(strings.Fields(totals[id]), ""); got != want {
			t.Errorf("total of %s = %q, want %q", id, got, want)
		}
	}

	for _, li := range findAll(doc, func(n *html.Node) bool { return n.Data == "li" && n.Parent != nil && hasClass(n.Parent, "finding-list") }) {
		if len(findAll(li, func(n *html.Node) bool { return n.Data == "p" })) != 0 {
			t.Errorf("finding detail wrapped in a paragraph: %q", text(li))
		}
	}

	scripts := findAll(doc, func(n *html.Node) bool {
		src, _ := attr(n, "src")
		return n.Data == "script" && src == ChartJSURL
	})
	if len(scripts) != 1 {
		t.Error("analytics page should load Chart.js")
	}
}

func TestRenderVideoModal(t *testing.T) {
	shell, site := newShell(t)

	view := shell.Navigate("/")
	doc := renderDoc(t, false, site, Request{View: view})
	if got := findAll(doc, func(n *html.Node) bool { return n.Data == "iframe" }); len(got) != 0 {
		t.Error("video modal should be closed by default")
	}

	doc = renderDoc(t, false, site, Request{View: view, VideoOpen: true})
	frames := findAll(doc, func(n *html.Node) bool { return n.Data == "iframe" })
	if len(frames) != 1 {
		t.Fatalf("iframes = %d, want 1", len(frames))
	}
	if title, _ := attr(frames[0], "title"); title != "Campaign Video" {
		t.Errorf("iframe title = %q", title)
	}

	doc = renderDoc(t, false, site, Request{View: shell.Navigate("/terms"), VideoOpen: true})
	if got := findAll(doc, func(n *html.Node) bool { return n.Data == "iframe" }); len(got) != 0 {
		t.Error("video flag must be ignored outside Home")
	}
}

func TestRenderFallback(t *testing.T) {
	shell, site := newShell(t)
	doc := renderDoc(t, false, site, Request{View: shell.Navigate("/missing")})

	main := findAll(doc, func(n *html.Node) bool { return n.Data == "main" })
	if len(main) != 1 {
		t.Fatal("main element missing")
	}
	if v, _ := attr(main[0], "data-requested"); v != "/missing" {
		t.Errorf("data-requested = %q", v)
	}
}

func TestRenderContactFormHasNoAction(t *testing.T) {
	shell, site := newShell(t)
	doc := renderDoc(t, false, site, Request{View: shell.Navigate("/contact")})

	forms := findAll(doc, func(n *html.Node) bool { return n.Data == "form" })
	if len(forms) != 1 {
		t.Fatalf("forms = %d, want 1", len(forms))
	}
	if _, ok := attr(forms[0], "action"); ok {
		t.Error("contact form must not have an action")
	}
	fields := findAll(forms[0], func(n *html.Node) bool { return n.Data == "input" || n.Data == "textarea" })
	if len(fields) != 3 {
		t.Errorf("fields = %d, want 3", len(fields))
	}
}

func TestMenuHref(t *testing.T) {
	tests := []struct {
		path  string
		menu  domain.MenuState
		video bool
		want  string
	}{
		{"/", domain.MenuClosed, false, "/?menu=open"},
		{"/", domain.MenuOpen, false, "/"},
		{"", domain.MenuClosed, false, "/?menu=open"},
		{"/", domain.MenuClosed, true, "/?menu=open&video=open"},
		{"/", domain.MenuOpen, true, "/?video=open"},
	}
	for _, tt := range tests {
		if got := MenuHref(tt.path, tt.menu, tt.video); got != tt.want {
			t.Errorf("MenuHref(%q, %v, %v) = %q, want %q", tt.path, tt.menu, tt.video, got, tt.want)
		}
	}
}

func TestAssets(t *testing.T) {
	r, err := New(Options{Minify: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"site.css", "charts.js"} {
		a, ok := r.Assets().Get(name)
		if !ok {
			t.Fatalf("asset %s missing", name)
		}
		if len(a.Body) == 0 || a.ETag == "" {
			t.Errorf("asset %s empty or without etag", name)
		}
	}
	if r.Assets().Version() == "" {
		t.Error("asset version empty")
	}
	if len(r.Assets().List()) != 2 {
		t.Errorf("assets = %d, want 2", len(r.Assets().List()))
	}
}

func TestMarkdownSanitises(t *testing.T) {
	md := NewMarkdown()

	got := string(md.HTML("Hello <script>alert(1)</script> **world**"))
	if strings.Contains(got, "<script>") {
		t.Errorf("script survived sanitising: %s", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Errorf("markdown not rendered: %s", got)
	}

	if got := string(md.Inline("just text")); got != "just text" {
		t.Errorf("Inline = %q", got)
	}
}

func TestRenderSiteNameOverride(t *testing.T) {
	shell, site := newShell(t)
	r, err := New(Options{SiteName: "Stop Racism BCN", Now: fixedNow})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, site, Request{View: shell.Navigate("/terms")}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<title>Terms of Service | Stop Racism BCN</title>") {
		t.Error("configured site name should replace the content's name in the title")
	}
}
