// Package state keeps small pieces of UI state on disk between runs.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Store is a persistent value kept in memory and mirrored to a JSON file.
type Store[T any] struct {
	mu       sync.RWMutex
	data     T
	path     string
	defaults func() T
}

// NewStore creates a store backed by path. defaults builds the value used when
// the file is missing or unreadable.
func NewStore[T any](path string, defaults func() T) *Store[T] {
	s := &Store[T]{
		path:     path,
		defaults: defaults,
		data:     defaults(),
	}
	s.load()
	return s
}

// Path returns the backing file
func (s *Store[T]) Path() string { return s.path }

// Get returns the current state.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Update applies fn to the state and persists the result.
func (s *Store[T]) Update(fn func(T) T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = fn(s.data)
	return s.save()
}

func (s *Store[T]) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	value := s.defaults()
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("State: ignoring corrupt %s: %v", s.path, err)
		return
	}
	s.data = value
}

func (s *Store[T]) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Write to a temp file, then rename
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Clear resets to defaults and removes the file.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.defaults()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
