package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/tui/events"
	"github.com/billie-coop/webui/internal/tui/styles"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	DirectoryDialogType DialogType = "directory"
	HelpDialogType      DialogType = "help"
	QuitDialogType      DialogType = "quit"
	ThemeDialogType     DialogType = "theme"
)

// Manager owns the dialogs and routes input to the open one
type Manager struct {
	dialogs      map[DialogType]Dialog
	activeDialog DialogType
	eventBroker  *events.Broker
	width        int
	height       int
}

// NewManager creates a new dialog manager
func NewManager(eventBroker *events.Broker, themes *styles.Manager) *Manager {
	return &Manager{
		dialogs: map[DialogType]Dialog{
			DirectoryDialogType: NewDirectoryDialog(),
			HelpDialogType:      NewHelpDialog(),
			QuitDialogType:      NewQuitDialog(),
			ThemeDialogType:     NewThemeSwitcher(themes),
		},
		eventBroker: eventBroker,
	}
}

// Init initializes all dialogs
func (m *Manager) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.Init())
	}
	return tea.Batch(cmds...)
}

// Update forwards msg to the active dialog
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(wsm.Width, wsm.Height)
	}

	if m.activeDialog == "" {
		return nil
	}
	dialog, ok := m.dialogs[m.activeDialog]
	if !ok {
		return nil
	}

	cmd := dialog.Update(msg)
	if !dialog.IsOpen() {
		closed := m.activeDialog
		m.activeDialog = ""
		m.publish(events.DialogCloseEvent, closed, dialog.GetResult())
	}
	return cmd
}

// View renders the active dialog
func (m *Manager) View() string {
	if dialog, ok := m.dialogs[m.activeDialog]; ok {
		return dialog.View()
	}
	return ""
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, dialog := range m.dialogs {
		cmds = append(cmds, dialog.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// OpenDialog opens a specific dialog, replacing any open one
func (m *Manager) OpenDialog(dialogType DialogType) tea.Cmd {
	dialog, ok := m.dialogs[dialogType]
	if !ok {
		return nil
	}
	if m.activeDialog != "" && m.activeDialog != dialogType {
		m.CloseActiveDialog()
	}
	m.activeDialog = dialogType
	m.publish(events.DialogOpenEvent, dialogType, nil)
	return dialog.Open()
}

// CloseActiveDialog closes the currently active dialog
func (m *Manager) CloseActiveDialog() tea.Cmd {
	dialog, ok := m.dialogs[m.activeDialog]
	if !ok {
		return nil
	}
	m.activeDialog = ""
	return dialog.Close()
}

// IsDialogOpen returns whether any dialog is open
func (m *Manager) IsDialogOpen() bool {
	return m.activeDialog != ""
}

// GetActiveDialog returns the currently active dialog type
func (m *Manager) GetActiveDialog() DialogType {
	return m.activeDialog
}

// Directory returns the settings directory dialog
func (m *Manager) Directory() *DirectoryDialog {
	return m.dialogs[DirectoryDialogType].(*DirectoryDialog)
}

func (m *Manager) publish(eventType events.EventType, id DialogType, data any) {
	if m.eventBroker == nil {
		return
	}
	m.eventBroker.Publish(events.Event{
		Type:    eventType,
		Payload: events.DialogPayload{DialogID: string(id), Data: data},
	})
}
