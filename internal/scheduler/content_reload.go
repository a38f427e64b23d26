package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/site"
)

// RevisionPublisher announces the live content revision to other instances.
type RevisionPublisher interface {
	PublishRevision(ctx context.Context, revision string) error
}

// ContentReloader handles periodic and on-demand reloading of site content
type ContentReloader struct {
	site          *site.Site
	cache         *index.PageCache
	publisher     RevisionPublisher // nil when Redis is disabled
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
	manualTrigger chan struct{}
}

// NewContentReloader creates a new content reloader. publisher may be nil.
func NewContentReloader(
	s *site.Site,
	cache *index.PageCache,
	publisher RevisionPublisher,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	return &ContentReloader{
		site:          s,
		cache:         cache,
		publisher:     publisher,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the content once and then keeps it fresh. The first load must
// succeed; later failures keep the previous snapshot and are only logged.
func (cr *ContentReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	cr.wg.Add(1)
	go func() {
		defer cr.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader and waits for its loop to exit
func (cr *ContentReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
	cr.wg.Wait()
}

// Reload reads the content file and, when its revision changed, swaps the
// snapshot and drops pages rendered from the old one.
func (cr *ContentReloader) Reload(ctx context.Context) error {
	cr.logger.Debug("reloading site content",
		logger.String("path", cr.site.ContentPath()))

	snap, changed, err := cr.site.Load()
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	if !changed {
		cr.logger.Debug("content unchanged",
			logger.String("revision", snap.Revision()))
		return nil
	}

	rev := snap.Revision()
	cr.cache.SetRevision(rev)
	evicted := cr.cache.EvictStale()

	cr.logger.Info("content reloaded",
		logger.String("revision", rev),
		logger.Int("evicted_pages", evicted))

	if cr.publisher != nil {
		if err := cr.publisher.PublishRevision(ctx, rev); err != nil {
			cr.logger.Warn("failed to publish revision to redis",
				logger.Error(err))
		}
	}

	return nil
}
