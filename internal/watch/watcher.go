package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amterp/cards/internal/config"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events a single write produces.
const DefaultDebounce = 100 * time.Millisecond

// StorageWatcher watches a storage directory and signals when card data changes.
type StorageWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
	delay   time.Duration
	changes chan struct{}
	errs    chan error
	mu      sync.Mutex
	timer   *time.Timer
	stopCh  chan struct{}
	done    chan struct{}
	stopped bool // Once stopped, cannot restart
	running bool
}

// NewStorageWatcher creates a watcher for the given storage directory.
func NewStorageWatcher(dir string, delay time.Duration) (*StorageWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &StorageWatcher{
		watcher: watcher,
		dir:     dir,
		delay:   delay,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Changes yields one value per debounced burst of storage changes.
// Bursts that arrive while a value is pending are merged into it.
func (w *StorageWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors reports watcher failures. Only the most recent unread error is kept.
func (w *StorageWatcher) Errors() <-chan error {
	return w.errs
}

// Start begins watching the storage directory.
func (w *StorageWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.stopped {
		return fmt.Errorf("storage watcher cannot be restarted after stop")
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true

	go w.run()
	return nil
}

// Stop stops watching for changes and waits for the event loop to exit.
func (w *StorageWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	if !w.running {
		w.stopped = true
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.done
	return w.watcher.Close()
}

func (w *StorageWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.stopCh:
			return
		}
	}
}

func (w *StorageWatcher) handleEvent(event fsnotify.Event) {
	if !isStorageEvent(event) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.emit)
}

func (w *StorageWatcher) emit() {
	w.mu.Lock()
	// Debounce timer may fire after Stop
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// isStorageEvent reports whether event touches a file holding card data.
// Temp files written before an atomic rename are hidden and ignored; the
// rename itself shows up as a create of the document.
func isStorageEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}

	switch base {
	case config.DocumentFileName, config.SQLiteFileName, config.SQLiteFileName + "-wal":
		return true
	}
	return false
}
