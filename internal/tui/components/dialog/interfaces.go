package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/webui/internal/tui/components/core"
)

// Dialog represents a modal dialog component
type Dialog interface {
	core.Component
	core.Sizeable
	core.Focusable

	Title() string
	IsOpen() bool
	Open() tea.Cmd
	Close() tea.Cmd

	// Result handling
	GetResult() any
	IsCancelled() bool
}
