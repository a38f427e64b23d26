// Package site holds the live content snapshot and serves rendered pages
// from it.
package site

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/render"
	"github.com/MrSnakeDoc/awareness/internal/sources/content"
)

// Snapshot is one consistent version of the site. It is never mutated
// after publication.
type Snapshot struct {
	Routes   *domain.RouteTable
	Bundle   *content.Bundle
	Source   string
	LoadedAt time.Time
}

// Revision identifies the content the snapshot was built from.
func (s *Snapshot) Revision() string { return s.Bundle.Revision }

// Branding returns the per-site values passed to the renderer.
func (s *Snapshot) Branding() render.Site {
	return render.Site{
		Name:        s.Bundle.Name,
		Brand:       s.Bundle.Brand,
		Description: s.Bundle.Description,
	}
}

// NewShell mounts a fresh application shell on this snapshot.
func (s *Snapshot) NewShell() (*domain.Shell, error) {
	return domain.NewShell(s.Routes, s.Bundle.Registry, s.Bundle.Nav, s.Bundle.Footer)
}

// Site owns the current snapshot and swaps it atomically on reload.
type Site struct {
	current atomic.Pointer[Snapshot]
	loadMu  sync.Mutex
	loader  *content.Loader
	mapper  *content.Mapper
	routes  *domain.RouteTable
	logger  logger.Logger
	now     func() time.Time
}

// New creates a site. Nothing is loaded until Load is called.
func New(loader *content.Loader, routes *domain.RouteTable, log logger.Logger) *Site {
	return &Site{
		loader: loader,
		mapper: content.NewMapper(routes),
		routes: routes,
		logger: log,
		now:    time.Now,
	}
}

// ContentPath returns the content file path, empty for built-in content.
func (s *Site) ContentPath() string { return s.loader.Path() }

// Current returns the live snapshot, nil before the first successful Load.
func (s *Site) Current() *Snapshot { return s.current.Load() }

// Load reads and maps the content and publishes it when its revision
// differs from the live one. A failed load leaves the live snapshot alone.
func (s *Site) Load() (snap *Snapshot, changed bool, err error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	doc, err := s.loader.Load()
	if err != nil {
		return s.Current(), false, err
	}

	if cur := s.Current(); cur != nil && cur.Revision() == doc.Revision {
		return cur, false, nil
	}

	bundle, err := s.mapper.Map(doc)
	if err != nil {
		return s.Current(), false, fmt.Errorf("invalid content in %s: %w", doc.Source, err)
	}

	next := &Snapshot{
		Routes:   s.routes,
		Bundle:   bundle,
		Source:   doc.Source,
		LoadedAt: s.now(),
	}
	s.current.Store(next)

	s.logger.Info("site content published",
		logger.String("revision", next.Revision()),
		logger.String("source", next.Source))

	return next, true, nil
}
