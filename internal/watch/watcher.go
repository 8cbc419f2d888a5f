// Package watch monitors the open directory with fsnotify and asks the
// viewer to refresh its image set when files appear, disappear, or are
// renamed underneath it.
package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/iroll/miniviewer/internal/log"
)

// RefreshEvent reports a directory change that warrants a rescan.
type RefreshEvent struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher monitors one directory for changes using fsnotify.
type Watcher struct {
	// Directory being watched
	dir string

	// Channel delivering refresh events to the UI loop
	refreshChan chan RefreshEvent

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the watched directory
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a directory watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		refreshChan: make(chan RefreshEvent, 10),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// SetDirectory points the watcher at dir, replacing any previous directory.
func (w *Watcher) SetDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir != "" && w.dir != dir {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.Warnf("could not stop watching %s: %v", w.dir, err)
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// RefreshChannel returns the channel that delivers refresh events.
func (w *Watcher) RefreshChannel() <-chan RefreshEvent {
	return w.refreshChan
}

// Start begins delivering refresh events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	// Create a new stop channel each time Start is called
	w.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				// Creates, removes, and renames change the image set.
				// Plain writes only change pixel data of an existing file.
				if !event.Op.Has(fsnotify.Create) &&
					!event.Op.Has(fsnotify.Remove) &&
					!event.Op.Has(fsnotify.Rename) {
					continue
				}

				ev := RefreshEvent{
					Path:      event.Name,
					Timestamp: time.Now(),
					Op:        event.Op,
				}

				// Non-blocking send; a pending refresh already covers
				// any dropped event.
				select {
				case w.refreshChan <- ev:
				default:
					log.Debugf("refresh channel full, dropped event for %s", event.Name)
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Debugf("watcher started")
	return nil
}

// Stop halts the watcher and closes the refresh channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false
	close(w.refreshChan)
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directory returns the directory being watched.
func (w *Watcher) Directory() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}
