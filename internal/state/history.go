package state

import (
	"path/filepath"
	"slices"
	"time"
)

// MaxRecent is the number of entries kept in the history.
const MaxRecent = 10

// Action records what happened to a file.
type Action string

const (
	ActionSaved  Action = "saved"
	ActionLoaded Action = "loaded"
)

// RecentFile is one entry in the history.
type RecentFile struct {
	Path   string    `json:"path"`
	Action Action    `json:"action"`
	At     time.Time `json:"at"`
}

// History holds recently saved and loaded settings files, newest first.
type History struct {
	Files []RecentFile `json:"files"`
}

// HistoryStore persists the recent-files history.
type HistoryStore struct {
	*Store[History]
}

// NewHistoryStore creates a history stored in <basePath>/history.json
func NewHistoryStore(basePath string) *HistoryStore {
	store := NewStore(filepath.Join(basePath, "history.json"), func() History {
		return History{}
	})
	return &HistoryStore{Store: store}
}

// Record moves path to the front of the history, dropping older duplicates
// and anything past MaxRecent.
func (h *HistoryStore) Record(path string, action Action, at time.Time) error {
	return h.Update(func(hist History) History {
		files := make([]RecentFile, 0, MaxRecent)
		files = append(files, RecentFile{Path: path, Action: action, At: at})
		for _, f := range hist.Files {
			if f.Path != path {
				files = append(files, f)
			}
		}
		if len(files) > MaxRecent {
			files = files[:MaxRecent]
		}
		return History{Files: files}
	})
}

// Recent returns the history, newest first.
func (h *HistoryStore) Recent() []RecentFile {
	return slices.Clone(h.Get().Files)
}

// Paths returns the paths in the history, newest first.
func (h *HistoryStore) Paths() []string {
	files := h.Get().Files
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
