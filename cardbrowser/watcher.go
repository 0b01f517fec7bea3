package cardbrowser

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// CatalogWatcher reloads a catalog file when it changes on disk. Bursts of
// write events (editors often write twice) are coalesced with a Scheduler.
type CatalogWatcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	path    string
	opts    CatalogParseOptions
	sched   *Scheduler
	delay   time.Duration
	onLoad  func(Catalog)
	logger  *zap.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool

	// reloadMu serializes reloads; stopped is guarded by it.
	reloadMu sync.Mutex
	stopped  bool
}

// NewCatalogWatcher watches the directory holding path. onLoad receives every
// successfully reloaded catalog; it runs on a timer goroutine, one reload at a
// time, and never after Stop returns. onLoad must not call Stop.
func NewCatalogWatcher(path string, opts CatalogParseOptions, onLoad func(Catalog), logger *zap.Logger) (*CatalogWatcher, error) {
	if onLoad == nil {
		return nil, errors.New("onLoad callback is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &CatalogWatcher{
		watcher: w,
		path:    abs,
		opts:    opts,
		sched:   NewScheduler(RealClock{}, Inline),
		delay:   200 * time.Millisecond,
		onLoad:  onLoad,
		logger:  logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (cw *CatalogWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	// Watch the directory: editors replace files, which drops a file watch.
	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return err
	}
	cw.logger.Info("watching catalog", zap.String("path", cw.path))
	go cw.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it and for any reload in flight.
func (cw *CatalogWatcher) Stop() {
	cw.reloadMu.Lock()
	cw.stopped = true
	cw.reloadMu.Unlock()

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
	cw.sched.Stop()
	if err := cw.watcher.Close(); err != nil {
		cw.logger.Warn("closing catalog watcher", zap.Error(err))
	}
}

func (cw *CatalogWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)
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
			cw.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (cw *CatalogWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	cw.sched.Schedule("reload", cw.delay, cw.reload)
}

func (cw *CatalogWatcher) reload() {
	cw.reloadMu.Lock()
	defer cw.reloadMu.Unlock()
	if cw.stopped {
		return
	}
	cat, err := LoadCatalogWithOptions(cw.path, cw.opts)
	if err != nil {
		cw.logger.Warn("catalog reload failed", zap.String("path", cw.path), zap.Error(err))
		return
	}
	cw.logger.Info("catalog reloaded", zap.String("path", cw.path), zap.Int("slides", len(cat.Slides)))
	cw.onLoad(cat)
}
