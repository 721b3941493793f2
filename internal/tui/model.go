// Package tui hosts the registered widgets in a Bubble Tea program: one form
// per tab, a status bar, a JSON preview pane and modal dialogs.
package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/config"
	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/state"
	"github.com/billie-coop/webui/internal/tui/components/dialog"
	"github.com/billie-coop/webui/internal/tui/components/form"
	"github.com/billie-coop/webui/internal/tui/components/preview"
	"github.com/billie-coop/webui/internal/tui/components/status"
	"github.com/billie-coop/webui/internal/tui/events"
	"github.com/billie-coop/webui/internal/tui/styles"
	"github.com/billie-coop/webui/internal/tui/tabs"
	"github.com/billie-coop/webui/internal/widget"
)

// DirWatcher is the part of the settings directory watcher the UI needs.
type DirWatcher interface {
	Watch(dir string) error
}

// Options are the dependencies of the TUI model
type Options struct {
	Registry *registry.Registry
	Settings *settings.Manager
	Broker   *events.Broker
	Themes   *styles.Manager
	Backend  config.Backend

	// Optional
	History *state.HistoryStore
	Watcher DirWatcher
	// Config persists the chosen theme
	Config *config.Manager
}

// Model is the top-level Bubble Tea model
type Model struct {
	width  int
	height int

	keys KeyMap

	// Components
	tabs          []tabs.Tab
	forms         []*form.Form
	activeTab     int
	statusBar     *status.Component
	preview       *preview.Component
	dialogManager *dialog.Manager

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	registry *registry.Registry
	settings *settings.Manager
	themes   *styles.Manager
	history  *state.HistoryStore
	watcher  DirWatcher
	config   *config.Manager

	filePicker *widget.FilePicker
	statusBox  *widget.TextBox
}

// New builds every tab, registers its widgets and returns the model
func New(opts Options) *Model {
	if opts.Themes == nil {
		opts.Themes = styles.DefaultManager()
	}
	styles.SetDefaultManager(opts.Themes)

	m := &Model{
		keys:          DefaultKeyMap(),
		statusBar:     status.New(),
		preview:       preview.New(),
		dialogManager: dialog.NewManager(opts.Broker, opts.Themes),
		eventBroker:   opts.Broker,
		registry:      opts.Registry,
		settings:      opts.Settings,
		themes:        opts.Themes,
		history:       opts.History,
		watcher:       opts.Watcher,
		config:        opts.Config,
	}

	m.tabs = tabs.Build(m.registry, opts.Backend, tabs.Actions{
		Save: m.save,
		Load: m.load,
	})
	for _, tab := range m.tabs {
		f := form.New(m.registry.Tab(tab.Name))
		f.Blur()
		m.forms = append(m.forms, f)
	}
	m.forms[0].Focus()

	m.filePicker = tabs.FilePicker(m.registry)
	m.statusBox = tabs.Status(m.registry)

	m.eventSub = m.eventBroker.Subscribe(
		events.ConfigSavedEvent,
		events.ConfigLoadedEvent,
		events.SettingsDirChangedEvent,
		events.SettingsFilesChangedEvent,
		events.StatusMessageEvent,
	)
	return m
}

// Init starts event processing and fills the file picker
func (m *Model) Init() tea.Cmd {
	dir := m.settings.Dir()
	m.statusBar.SetLeftContent(styles.FolderIcon + " " + dir)

	return tea.Batch(
		m.dialogManager.Init(),
		m.listenForEvents(),
		m.refreshFiles(dir),
		m.statusBar.ShowInfo("UI settings will be saved to: "+dir),
	)
}

// Update handles all TUI updates and routes them to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case eventMsg:
		cmds = append(cmds, m.handleEvent(msg.event), m.listenForEvents())
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resizeComponents()

	case loadedMsg:
		return m, m.applyLoad(msg.result)

	case filesListedMsg:
		m.setCandidates(msg)
		return m, nil

	case previewMsg:
		m.preview.SetContent(msg.path, msg.content)
		return m, nil

	case dialog.DirectorySelectedMsg:
		return m, m.setDirectory(msg.Path)

	case dialog.ThemeSelectedMsg:
		if m.config != nil {
			if err := m.config.Set("theme", msg.Name); err != nil {
				log.Printf("Config: failed to save theme: %v", err)
				m.eventBroker.Publishf("error", "Theme not saved: %v", err)
				return m, nil
			}
		}
		return m, m.statusBar.ShowInfo("Theme: " + msg.Name)
	}

	// If a dialog is open, route input to it first
	if m.dialogManager.IsDialogOpen() {
		cmds = append(cmds, m.dialogManager.Update(msg))
		if _, ok := msg.(tea.KeyPressMsg); ok {
			return m, tea.Batch(cmds...)
		}
	}

	if kp, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kp, m.keys.Quit):
			return m, m.dialogManager.OpenDialog(dialog.QuitDialogType)
		case key.Matches(kp, m.keys.NextTab):
			m.switchTab(1)
			return m, nil
		case key.Matches(kp, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil
		case key.Matches(kp, m.keys.Save):
			return m, m.save()
		case key.Matches(kp, m.keys.Directory):
			m.dialogManager.Directory().SetCurrent(m.settings.Dir())
			return m, m.dialogManager.OpenDialog(dialog.DirectoryDialogType)
		case key.Matches(kp, m.keys.Theme):
			return m, m.dialogManager.OpenDialog(dialog.ThemeDialogType)
		case key.Matches(kp, m.keys.Help) && !m.editingText():
			return m, m.dialogManager.OpenDialog(dialog.HelpDialogType)
		}
		return m, m.forms[m.activeTab].Update(msg)
	}

	cmds = append(cmds, m.statusBar.Update(msg))
	return m, tea.Batch(cmds...)
}

// editingText reports whether the focused field accepts typed characters
func (m *Model) editingText() bool {
	_, c := m.forms[m.activeTab].Selected()
	if c == nil || !c.Interactive() {
		return false
	}
	if _, ok := c.(*widget.TextBox); ok {
		return true
	}
	return c.Kind() == widget.KindFilePicker
}

func (m *Model) switchTab(delta int) {
	m.forms[m.activeTab].Blur()
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.forms[m.activeTab].Focus()
}

// ActiveTab returns the name of the visible tab
func (m *Model) ActiveTab() string {
	return m.tabs[m.activeTab].Name
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.dialogManager.IsDialogOpen() {
		if dialogView := m.dialogManager.View(); dialogView != "" {
			return dialogView
		}
	}

	s := styles.CurrentTheme().S()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.RenderThemeGradient("webui")+"  ",
		m.renderTabBar(),
	)

	formWidth, previewWidth := m.paneWidths()
	bodyHeight := m.bodyHeight()

	formPane := s.BorderFocused.
		Width(formWidth - 2).
		Height(bodyHeight - 2).
		Render(m.forms[m.activeTab].View())
	body := formPane
	if previewWidth > 0 {
		previewPane := s.Border.
			Width(previewWidth - 2).
			Height(bodyHeight - 2).
			Render(m.preview.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, formPane, previewPane)
	}

	footer := s.Subtle.Render(m.helpLine())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		footer,
		m.statusBar.View(),
	)
}

func (m *Model) renderTabBar() string {
	s := styles.CurrentTheme().S()
	rendered := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		style := s.Tab
		if i == m.activeTab {
			style = s.TabActive
		}
		rendered[i] = style.Render(tab.Title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) helpLine() string {
	var parts []string
	bindings := append(m.forms[m.activeTab].KeyMap().ShortHelp(), m.keys.ShortHelp()...)
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
