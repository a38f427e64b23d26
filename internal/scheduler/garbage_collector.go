package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
)

// DefaultGCInterval is used when no interval is configured
const DefaultGCInterval = 10 * time.Minute

// StaleFlusher removes shared pages of every revision except the live one.
type StaleFlusher interface {
	FlushStale(ctx context.Context, keep string) (int, error)
}

// GarbageCollector drops rendered pages that expired or belong to a
// revision that is no longer served.
type GarbageCollector struct {
	store    StaleFlusher // nil when Redis is disabled
	cache    *index.PageCache
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	store StaleFlusher,
	cache *index.PageCache,
	log logger.Logger,
	interval time.Duration,
) *GarbageCollector {
	if interval <= 0 {
		interval = DefaultGCInterval
	}

	return &GarbageCollector{
		store:    store,
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	gc.wg.Add(1)
	go func() {
		defer gc.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector and waits for its loop to exit
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
	gc.wg.Wait()
}

// Collect evicts stale pages from memory and, when configured, from Redis.
// Nothing is flushed from Redis before a revision is known, so a starting
// instance cannot wipe pages another instance is serving.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	evicted := gc.cache.EvictStale()

	flushed := 0
	rev := gc.cache.Revision()
	if gc.store != nil && rev != "" {
		n, err := gc.store.FlushStale(ctx, rev)
		flushed = n
		if err != nil {
			return err
		}
	}

	if evicted+flushed > 0 {
		gc.logger.Info("garbage collection completed",
			logger.String("revision", rev),
			logger.Int("memory_evicted", evicted),
			logger.Int("redis_flushed", flushed))
	} else {
		gc.logger.Debug("no pages to garbage collect")
	}

	return nil
}
