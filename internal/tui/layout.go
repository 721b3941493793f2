package tui

import tea "github.com/charmbracelet/bubbletea/v2"

const (
	// Rows taken by the header, footer and status bar
	chromeHeight = 3

	// The preview pane is shown from this width up
	previewMinWidth = 100
)

// paneWidths splits the terminal between the form and the preview pane
func (m *Model) paneWidths() (formWidth, previewWidth int) {
	if m.width < previewMinWidth {
		return m.width, 0
	}
	previewWidth = m.width * 2 / 5
	return m.width - previewWidth, previewWidth
}

func (m *Model) bodyHeight() int {
	return max(3, m.height-chromeHeight)
}

// resizeComponents propagates the terminal size to every component
func (m *Model) resizeComponents() tea.Cmd {
	formWidth, previewWidth := m.paneWidths()
	inner := m.bodyHeight() - 2

	var cmds []tea.Cmd
	for _, f := range m.forms {
		cmds = append(cmds, f.SetSize(formWidth-4, inner))
	}
	if previewWidth > 0 {
		cmds = append(cmds, m.preview.SetSize(previewWidth-4, inner))
	}
	cmds = append(cmds,
		m.statusBar.SetSize(m.width, 1),
		m.dialogManager.SetSize(m.width, m.height),
	)
	return tea.Batch(cmds...)
}
