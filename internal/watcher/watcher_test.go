package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(paths []string) {
	r.mu.Lock()
	r.calls = append(r.calls, paths)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for onChange")
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestFileWatcher_DebouncesChanges(t *testing.T) {
	rec := newRecorder()
	w, err := New(50*time.Millisecond, rec.onChange)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	w.FileChanged("/s/a.json")
	w.FileChanged("/s/b.json")
	w.FileChanged("/s/a.json")
	rec.wait(t)

	if rec.count() != 1 {
		t.Fatalf("onChange called %d times, want 1", rec.count())
	}
	if got := rec.calls[0]; len(got) != 2 {
		t.Fatalf("paths = %v, want 2 distinct paths", got)
	}
}

func TestFileWatcher_ShouldIgnore(t *testing.T) {
	w := &FileWatcher{extensions: []string{".json"}}

	tests := map[string]bool{
		"/s/20250101-120000.json":          false,
		"/s/notes.txt":                     true,
		"/s/.20250101-120000.json.123.tmp": true,
		"/s/.hidden.json":                  true,
		"/s/x.json.swp":                    true,
	}
	for path, want := range tests {
		if got := w.shouldIgnore(path); got != want {
			t.Errorf("shouldIgnore(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestFileWatcher_WatchesDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	rec := newRecorder()

	w, err := New(50*time.Millisecond, rec.onChange)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.Watch(first); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Watch(second); err != nil {
		t.Fatalf("retarget: %v", err)
	}
	if w.Dir() != second {
		t.Fatalf("Dir() = %q, want %q", w.Dir(), second)
	}

	target := filepath.Join(second, "saved.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec.wait(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	found := false
	for _, p := range rec.calls[0] {
		if p == target {
			found = true
		}
	}
	if !found {
		t.Fatalf("paths = %v, want %s", rec.calls[0], target)
	}
}

func TestFileWatcher_WatchMissingDirectory(t *testing.T) {
	w, err := New(0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("watching a missing directory should fail")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := w.Watch(t.TempDir()); err == nil {
		t.Fatal("Watch after Close should fail")
	}
}
