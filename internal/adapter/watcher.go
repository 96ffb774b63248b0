package adapter

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	m "github.com/mouse-blink/treesync/internal/model"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher reports changes made on disk to one file.
type FileWatcher interface {
	Start(ctx context.Context) error
	// Changes delivers one value per debounced burst of changes.
	Changes() <-chan m.Path
	Stop()
}

// FSNotifyWatcher watches the directory of a file, since many editors save
// by renaming a temporary file over the original.
type FSNotifyWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger
	changes  chan m.Path
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewFileWatcher creates a watcher for path. It does nothing until Start.
func NewFileWatcher(path m.Path, debounce time.Duration, logger *zap.Logger) (*FSNotifyWatcher, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &FSNotifyWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan m.Path, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; events are processed in a
// goroutine until Stop is called or ctx is cancelled.
func (fw *FSNotifyWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	fw.running = true
	go fw.run(ctx)

	return nil
}

// Changes returns the channel of debounced change notifications.
func (fw *FSNotifyWatcher) Changes() <-chan m.Path {
	return fw.changes
}

// Stop stops the watcher and waits for the event loop to exit.
func (fw *FSNotifyWatcher) Stop() {
	fw.mu.Lock()
	running := fw.running
	fw.running = false
	fw.mu.Unlock()

	if running {
		close(fw.stopCh)
		<-fw.doneCh
	}

	if err := fw.watcher.Close(); err != nil {
		fw.logger.Debug("closing watcher", zap.Error(err))
	}
}

func (fw *FSNotifyWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	timer := time.NewTimer(fw.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			fw.logger.Debug("source changed on disk", zap.String("path", fw.path), zap.String("op", event.Op.String()))
			timer.Reset(fw.debounce)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}

			fw.logger.Warn("watch error", zap.String("path", fw.path), zap.Error(err))
		case <-timer.C:
			select {
			case fw.changes <- m.Path(fw.path):
			default:
				// a notification is already pending
			}
		}
	}
}
