package form

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines key bindings for moving between fields
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
}

// DefaultKeyMap returns the default key bindings for field navigation.
// Letters are left to the widgets so text boxes can receive them.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next field"),
		),
		Home: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "first field"),
		),
		End: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "last field"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down}
}
