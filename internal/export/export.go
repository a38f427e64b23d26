// Package export writes the whole site as static files.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/site"
	"github.com/MrSnakeDoc/awareness/internal/utils"
)

// NotFoundFile is the document static hosts serve for unknown paths.
const NotFoundFile = "404.html"

// DefaultConcurrency bounds parallel page renders.
const DefaultConcurrency = 4

// Report summarises one export.
type Report struct {
	Dir      string
	Revision string
	Pages    int
	Assets   int
	Bytes    int64
}

// Exporter renders every route of the live snapshot to disk.
type Exporter struct {
	pages       *site.Service
	logger      logger.Logger
	concurrency int
}

// New creates an exporter. concurrency <= 0 uses DefaultConcurrency.
func New(pages *site.Service, log logger.Logger, concurrency int) *Exporter {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Exporter{pages: pages, logger: log, concurrency: concurrency}
}

// Export writes <dir>/index.html for the root, <dir>/<route>/index.html for
// every other route, <dir>/404.html and <dir>/assets/*. Existing files are
// overwritten; nothing else in dir is touched.
func (e *Exporter) Export(ctx context.Context, dir string) (Report, error) {
	if dir == "" {
		return Report{}, fmt.Errorf("export directory is empty")
	}
	snap := e.pages.Site().Current()
	if snap == nil {
		return Report{}, site.ErrNotLoaded
	}

	var pages, assets atomic.Int64
	var written atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, route := range snap.Routes.Routes() {
		g.Go(func() error {
			res, err := e.pages.Render(gctx, site.Request{Path: route.Path, Static: true})
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", route.Path, err)
			}
			n, err := writeFile(filepath.Join(dir, pageFile(route.Path)), res.Body)
			if err != nil {
				return err
			}
			pages.Add(1)
			written.Add(n)
			return nil
		})
	}

	g.Go(func() error {
		// Any unregistered path renders the not-found document.
		res, err := e.pages.Render(gctx, site.Request{Path: "/" + NotFoundFile, Static: true})
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", NotFoundFile, err)
		}
		n, err := writeFile(filepath.Join(dir, NotFoundFile), res.Body)
		if err != nil {
			return err
		}
		written.Add(n)
		return nil
	})

	for _, asset := range e.pages.Renderer().Assets().List() {
		g.Go(func() error {
			n, err := writeFile(filepath.Join(dir, "assets", asset.Name), asset.Body)
			if err != nil {
				return err
			}
			assets.Add(1)
			written.Add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		Dir:      dir,
		Revision: snap.Revision(),
		Pages:    int(pages.Load()),
		Assets:   int(assets.Load()),
		Bytes:    written.Load(),
	}
	e.logger.Info("site exported",
		logger.String("dir", dir),
		logger.String("revision", report.Revision),
		logger.Int("pages", report.Pages),
		logger.Int("assets", report.Assets),
		logger.Int64("bytes", report.Bytes))
	return report, nil
}

// pageFile maps a route path to its file relative to the export root.
func pageFile(path string) string {
	rel := strings.Trim(path, "/")
	if rel == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(rel), "index.html")
}

func writeFile(name string, body []byte) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", filepath.Dir(name), err)
	}
	f, err := os.Create(name)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", name, err)
	}
	n, err := f.Write(body)
	if err != nil {
		utils.Close(f)
		return 0, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", name, err)
	}
	return int64(n), nil
}
