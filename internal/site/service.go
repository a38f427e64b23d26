package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/render"
)

// NotFoundPolicy decides what an unknown path gets.
type NotFoundPolicy string

const (
	// NotFoundHome renders Home with a 404 status.
	NotFoundHome NotFoundPolicy = "home"
	// NotFoundRedirect sends a 302 to the root route.
	NotFoundRedirect NotFoundPolicy = "redirect"
)

// ParseNotFoundPolicy validates a policy name.
func ParseNotFoundPolicy(s string) (NotFoundPolicy, error) {
	switch p := NotFoundPolicy(s); p {
	case NotFoundHome, NotFoundRedirect:
		return p, nil
	}
	return "", fmt.Errorf("unknown not-found policy %q (want home or redirect)", s)
}

// ErrNotLoaded is returned while no snapshot has been published yet.
var ErrNotLoaded = errors.New("site content not loaded")

// Cache sources reported in Result.Cache.
const (
	CacheMiss   = "miss"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheBypass = "bypass"
)

// Request is one navigation.
type Request struct {
	Path   string
	Menu   domain.MenuState
	Video  bool
	Static bool // rendered for a static host; never cached
}

// Result is a rendered response.
type Result struct {
	Status   int
	Body     []byte
	Location string // set for redirects
	Revision string
	Cache    string
}

// PageStore is the shared second-level cache. *redisstore.Store satisfies it.
type PageStore interface {
	GetPage(ctx context.Context, revision, key string) (*index.Entry, error)
	SavePage(ctx context.Context, e *index.Entry, ttl time.Duration) error
}

// Service renders navigations against the live snapshot and caches the
// output per content revision.
type Service struct {
	site     *Site
	renderer *render.Renderer
	memory   *index.PageCache
	store    PageStore // nil when Redis is disabled
	ttl      time.Duration
	policy   NotFoundPolicy
	logger   logger.Logger
	now      func() time.Time
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	TTL    time.Duration
	Policy NotFoundPolicy
}

// NewService wires a page service. store may be nil.
func NewService(s *Site, r *render.Renderer, memory *index.PageCache, store PageStore, opts ServiceOptions, log logger.Logger) *Service {
	if opts.Policy == "" {
		opts.Policy = NotFoundHome
	}
	return &Service{
		site:     s,
		renderer: r,
		memory:   memory,
		store:    store,
		ttl:      opts.TTL,
		policy:   opts.Policy,
		logger:   log,
		now:      time.Now,
	}
}

// Site returns the underlying site.
func (svc *Service) Site() *Site { return svc.site }

// Renderer returns the HTML renderer.
func (svc *Service) Renderer() *render.Renderer { return svc.renderer }

// Serve answers one navigation, applying the not-found policy.
func (svc *Service) Serve(ctx context.Context, req Request) (Result, error) {
	snap := svc.site.Current()
	if snap == nil {
		return Result{}, ErrNotLoaded
	}

	if snap.Routes.ResolveOrFallback(req.Path).Fallback && svc.policy == NotFoundRedirect {
		return Result{
			Status:   http.StatusFound,
			Location: snap.Routes.Home().Path,
			Revision: snap.Revision(),
			Cache:    CacheBypass,
		}, nil
	}

	return svc.render(ctx, snap, req)
}

// Render answers one navigation without redirecting unknown paths. Static
// export uses it to produce the 404 document.
func (svc *Service) Render(ctx context.Context, req Request) (Result, error) {
	snap := svc.site.Current()
	if snap == nil {
		return Result{}, ErrNotLoaded
	}
	return svc.render(ctx, snap, req)
}

func (svc *Service) render(ctx context.Context, snap *Snapshot, req Request) (Result, error) {
	rev := snap.Revision()
	known := !snap.Routes.ResolveOrFallback(req.Path).Fallback

	// Unknown paths are unbounded; they are rendered but never cached.
	if !known || req.Static {
		body, err := svc.compose(snap, req)
		if err != nil {
			return Result{}, err
		}
		status := http.StatusOK
		if !known {
			status = http.StatusNotFound
		}
		return Result{Status: status, Body: body, Revision: rev, Cache: CacheBypass}, nil
	}

	key := index.Key(rev, req.Path, req.Menu.IsOpen(), req.Video)

	if e, ok := svc.memory.Get(key); ok {
		return Result{Status: e.Status, Body: e.Body, Revision: rev, Cache: CacheMemory}, nil
	}

	if svc.store != nil {
		e, err := svc.store.GetPage(ctx, rev, key)
		if err != nil {
			svc.logger.Warn("page cache read failed", logger.String("key", key), logger.Error(err))
		} else if e != nil {
			svc.memory.Put(e)
			return Result{Status: e.Status, Body: e.Body, Revision: rev, Cache: CacheRedis}, nil
		}
	}

	body, err := svc.compose(snap, req)
	if err != nil {
		return Result{}, err
	}

	now := svc.now()
	e := &index.Entry{
		Key:      key,
		Revision: rev,
		Status:   http.StatusOK,
		Body:     body,
		StoredAt: now,
	}
	if svc.ttl > 0 {
		e.ExpiresAt = now.Add(svc.ttl)
	}
	svc.memory.Put(e)

	if svc.store != nil {
		if err := svc.store.SavePage(ctx, e, svc.ttl); err != nil {
			svc.logger.Warn("page cache write failed", logger.String("key", key), logger.Error(err))
		}
	}

	return Result{Status: e.Status, Body: body, Revision: rev, Cache: CacheMiss}, nil
}

// compose mounts a shell for this request, navigates and renders.
func (svc *Service) compose(snap *Snapshot, req Request) ([]byte, error) {
	shell, err := snap.NewShell()
	if err != nil {
		return nil, fmt.Errorf("failed to mount shell: %w", err)
	}

	view := shell.Navigate(req.Path)
	if req.Menu.IsOpen() {
		view = shell.SetMenu(domain.MenuOpen)
	}

	var buf bytes.Buffer
	if err := svc.renderer.Render(&buf, snap.Branding(), render.Request{View: view, VideoOpen: req.Video, Static: req.Static}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
