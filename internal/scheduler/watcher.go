package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/awareness/internal/logger"
)

// DefaultDebounce is how long the content file must stay quiet before a
// reload is requested. Editors often write a file in several steps.
const DefaultDebounce = 500 * time.Millisecond

// ContentWatcher requests a reload when the content file changes on disk.
// It watches the parent directory so that atomic rename saves are seen.
type ContentWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	debounce time.Duration
	pending  time.Time // last relevant event, zero when nothing is pending
	trigger  chan<- struct{}
	logger   logger.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewContentWatcher creates a watcher for path that signals on trigger.
func NewContentWatcher(path string, trigger chan<- struct{}, log logger.Logger, debounce time.Duration) (*ContentWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("no content file to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &ContentWatcher{
		watcher:  w,
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: debounce,
		trigger:  trigger,
		logger:   log.With(logger.String("path", abs)),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Calling it twice is a no-op.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	if err := cw.watcher.Add(cw.dir); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", cw.dir, err)
	}

	cw.logger.Info("watching content file")

	go cw.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher
func (cw *ContentWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		_ = cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		cw.logger.Warn("failed to close file watcher", logger.Error(err))
	}
}

func (cw *ContentWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	tick := time.NewTicker(cw.debounce / 5)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("file watcher error", logger.Error(err))
		case now := <-tick.C:
			cw.flush(now)
		}
	}
}

func (cw *ContentWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	// Chmod alone never changes content.
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	cw.logger.Debug("content file changed",
		logger.String("op", event.Op.String()))

	cw.mu.Lock()
	cw.pending = time.Now()
	cw.mu.Unlock()
}

func (cw *ContentWatcher) flush(now time.Time) {
	cw.mu.Lock()
	if cw.pending.IsZero() || now.Sub(cw.pending) < cw.debounce {
		cw.mu.Unlock()
		return
	}
	cw.pending = time.Time{}
	cw.mu.Unlock()

	// A reload already queued covers this change too.
	select {
	case cw.trigger <- struct{}{}:
		cw.logger.Info("content change detected, reload requested")
	default:
	}
}
