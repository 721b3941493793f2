package tui

import (
	"log"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/state"
	"github.com/billie-coop/webui/internal/tui/events"
)

// loadedMsg carries a finished Load back to the update loop, where the
// updates are applied to the widgets.
type loadedMsg struct {
	result settings.LoadResult
}

// filesListedMsg carries the saved files of a settings directory.
type filesListedMsg struct {
	dir   string
	paths []string
}

// previewMsg carries the content of the file shown in the preview pane.
type previewMsg struct {
	path    string
	content string
}

// save snapshots the widgets and writes them to a new timestamped file.
// It runs on the update loop because it reads widget values.
func (m *Model) save() tea.Cmd {
	res := m.settings.Save("")
	m.setStatusBox(res.String())
	if res.OK() {
		m.recordHistory(res.Path, state.ActionSaved)
	}
	m.eventBroker.Publish(events.Event{
		Type:    events.ConfigSavedEvent,
		Payload: events.ResultPayload{Result: res},
	})
	return nil
}

// load reads the file selected in the file picker. Reading and decoding run
// off the update loop; the updates are applied when loadedMsg arrives.
func (m *Model) load() tea.Cmd {
	src := ""
	if m.filePicker != nil {
		src = m.filePicker.Path()
	}
	return func() tea.Msg {
		return loadedMsg{result: m.settings.Load(src)}
	}
}

// applyLoad pushes a load result into the widgets, the status widget
// included, and announces it
func (m *Model) applyLoad(res settings.LoadResult) tea.Cmd {
	applyErr := res.Apply()
	if applyErr != nil {
		log.Printf("Settings: some values were rejected: %v", applyErr)
	}
	if res.OK() {
		m.recordHistory(res.Path, state.ActionLoaded)
	}
	m.eventBroker.Publish(events.Event{
		Type:    events.ConfigLoadedEvent,
		Payload: events.LoadPayload{Result: res, ApplyErr: applyErr},
	})
	return nil
}

// setDirectory switches the settings directory and retargets the watcher
func (m *Model) setDirectory(path string) tea.Cmd {
	res := m.settings.SetDirectory(path)
	m.setStatusBox(res.String())
	m.eventBroker.Publish(events.Event{
		Type:    events.SettingsDirChangedEvent,
		Payload: events.ResultPayload{Result: res},
	})
	if res.OK() && m.watcher != nil {
		if err := m.watcher.Watch(res.Path); err != nil {
			log.Printf("Watcher: failed to watch %s: %v", res.Path, err)
			m.eventBroker.Publishf("warning", "Not watching %s for changes: %v", res.Path, err)
		}
	}
	return nil
}

// refreshFiles lists the saved files of dir for the file picker
func (m *Model) refreshFiles(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := settings.ListSaved(dir)
		if err != nil {
			log.Printf("Settings: %v", err)
		}
		return filesListedMsg{dir: dir, paths: settings.Paths(files)}
	}
}

// readPreview loads a file for the preview pane
func readPreview(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Preview: %v", err)
			return previewMsg{path: path}
		}
		return previewMsg{path: path, content: string(data)}
	}
}

// recordHistory remembers a saved or loaded file
func (m *Model) recordHistory(path string, action state.Action) {
	if m.history == nil || path == "" {
		return
	}
	if err := m.history.Record(path, action, time.Now()); err != nil {
		log.Printf("State: failed to record %s: %v", path, err)
	}
}

// setCandidates offers the files of the current directory first, then
// recently used files from elsewhere.
func (m *Model) setCandidates(msg filesListedMsg) {
	if m.filePicker == nil || msg.dir != m.settings.Dir() {
		return
	}
	paths := msg.paths
	if m.history != nil {
		for _, p := range m.history.Paths() {
			if !slices.Contains(paths, p) {
				paths = append(paths, p)
			}
		}
	}
	m.filePicker.SetCandidates(paths)
}
