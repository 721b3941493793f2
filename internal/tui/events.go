package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/tui/components/status"
	"github.com/billie-coop/webui/internal/tui/events"
	"github.com/billie-coop/webui/internal/tui/styles"
)

// eventMsg wraps a broker event for the update loop
type eventMsg struct {
	event events.Event
}

// listenForEvents waits for the next broker event
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.eventSub
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

// handleEvent reacts to broker events
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.ConfigSavedEvent:
		if p, ok := event.Payload.(events.ResultPayload); ok {
			return m.handleSaved(p.Result)
		}

	case events.ConfigLoadedEvent:
		if p, ok := event.Payload.(events.LoadPayload); ok {
			return m.handleLoaded(p)
		}

	case events.SettingsDirChangedEvent:
		if p, ok := event.Payload.(events.ResultPayload); ok {
			return m.handleDirChanged(p.Result)
		}

	case events.SettingsFilesChangedEvent:
		if p, ok := event.Payload.(events.FilesChangedPayload); ok {
			return m.refreshFiles(p.Dir)
		}

	case events.StatusMessageEvent:
		if p, ok := event.Payload.(events.StatusMessagePayload); ok {
			return m.statusBar.SetMessage(p.Message, status.ParseType(p.Type))
		}
	}
	return nil
}

func (m *Model) handleSaved(res settings.Result) tea.Cmd {
	if !res.OK() {
		return m.statusBar.ShowError(res.String())
	}
	return tea.Batch(
		m.statusBar.ShowSuccess(res.String()),
		readPreview(res.Path),
		m.refreshFiles(m.settings.Dir()),
	)
}

func (m *Model) handleLoaded(p events.LoadPayload) tea.Cmd {
	res := p.Result
	switch {
	case errors.Is(res.Err, settings.ErrFileNotSelected):
		return m.statusBar.ShowWarning(res.String())
	case res.Err != nil:
		return m.statusBar.ShowError(res.String())
	}

	cmds := []tea.Cmd{readPreview(res.Path)}
	switch {
	case p.ApplyErr != nil:
		cmds = append(cmds, m.statusBar.ShowWarning(fmt.Sprintf("%s (some values were rejected)", res.String())))
	case len(res.Skipped) > 0:
		cmds = append(cmds, m.statusBar.ShowWarning(fmt.Sprintf("%s (%d unknown keys ignored)", res.String(), len(res.Skipped))))
	default:
		cmds = append(cmds, m.statusBar.ShowSuccess(res.String()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleDirChanged(res settings.Result) tea.Cmd {
	if !res.OK() {
		return m.statusBar.ShowError(res.String())
	}
	m.statusBar.SetLeftContent(styles.FolderIcon + " " + res.Path)
	return tea.Batch(
		m.statusBar.ShowSuccess(res.String()),
		m.refreshFiles(res.Path),
	)
}

func (m *Model) setStatusBox(message string) {
	if m.statusBox != nil {
		_ = m.statusBox.SetValue(message)
	}
}
