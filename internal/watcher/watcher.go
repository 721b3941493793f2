package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher monitors a settings directory and reports changes to its JSON
// files. Rapid changes (a save writes a temp file, then renames it) are
// collected and delivered as a single onChange call once things settle.
type FileWatcher struct {
	debounceDelay time.Duration
	extensions    []string

	// Debouncing state
	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths map[string]struct{}

	onChange func([]string)

	mu      sync.Mutex
	fs      *fsnotify.Watcher
	dir     string
	done    chan struct{}
	stopped bool
}

// New creates a watcher with the given debounce delay. onChange receives the
// changed paths after the delay. Nothing is watched until Watch is called.
func New(debounceDelay time.Duration, onChange func([]string)) (*FileWatcher, error) {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &FileWatcher{
		debounceDelay: debounceDelay,
		extensions:    []string{".json"},
		pendingPaths:  make(map[string]struct{}),
		onChange:      onChange,
		fs:            fs,
		done:          make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch retargets the watcher at dir, dropping the previous directory.
func (w *FileWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return fmt.Errorf("watcher closed")
	}
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone.
		_ = w.fs.Remove(w.dir)
	}
	if err := w.fs.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Dir returns the watched directory, or "" when none is watched.
func (w *FileWatcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// FileChanged notifies the watcher of a file change.
// Multiple rapid calls are debounced into a single onChange callback.
func (w *FileWatcher) FileChanged(path string) {
	if w.shouldIgnore(path) {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.pendingPaths[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// Close stops the watcher. Pending changes are dropped.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingPaths = make(map[string]struct{})
	w.timerMu.Unlock()
	return err
}

func (w *FileWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.FileChanged(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher: %v", err)
		}
	}
}

// processPending is called after the debounce delay.
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()

	paths := make([]string, 0, len(w.pendingPaths))
	for path := range w.pendingPaths {
		paths = append(paths, path)
	}

	w.pendingPaths = make(map[string]struct{})
	w.timer = nil

	w.timerMu.Unlock()

	// Trigger callback (outside lock)
	if len(paths) > 0 && w.onChange != nil {
		w.onChange(paths)
	}
}

// shouldIgnore filters out hidden files, temp files and other extensions.
func (w *FileWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including the temp files written during a save
	if strings.HasPrefix(base, ".") {
		return true
	}

	switch filepath.Ext(base) {
	case ".tmp", ".swp", ".swo":
		return true
	}

	if len(w.extensions) == 0 {
		return false
	}
	ext := filepath.Ext(base)
	for _, want := range w.extensions {
		if ext == want {
			return false
		}
	}
	return true
}
