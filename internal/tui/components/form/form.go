// Package form renders one tab's registered widgets as a vertical form and
// routes keys to the focused field.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/tui/components/core"
	"github.com/billie-coop/webui/internal/tui/styles"
	"github.com/billie-coop/webui/internal/widget"
)

type field struct {
	id      string
	control widget.Control
}

// Form lays out widgets one per row: label on the left, control on the right.
type Form struct {
	core.FocusableBase
	core.SizeableBase

	keyMap KeyMap
	fields []field
	cursor int
	offset int
}

// New builds a form from registry entries. Entries whose widget cannot be
// rendered in the terminal are left out.
func New(entries []registry.Entry) *Form {
	f := &Form{keyMap: DefaultKeyMap()}
	for _, e := range entries {
		if c, ok := e.Widget.(widget.Control); ok {
			f.fields = append(f.fields, field{id: e.ID, control: c})
		}
	}
	for i, fd := range f.fields {
		if fd.control.Interactive() {
			f.cursor = i
			break
		}
	}
	f.Focus()
	return f
}

// Init implements core.Component
func (f *Form) Init() tea.Cmd {
	return nil
}

// Len returns the number of fields
func (f *Form) Len() int {
	return len(f.fields)
}

// Selected returns the id and widget of the focused field
func (f *Form) Selected() (string, widget.Control) {
	if len(f.fields) == 0 {
		return "", nil
	}
	fd := f.fields[f.cursor]
	return fd.id, fd.control
}

// KeyMap returns the navigation bindings
func (f *Form) KeyMap() KeyMap {
	return f.keyMap
}

// Select moves the cursor to the field with the given id
func (f *Form) Select(id string) bool {
	for i, fd := range f.fields {
		if fd.id == id {
			f.cursor = i
			f.scroll()
			return true
		}
	}
	return false
}

// Update moves between fields or forwards the key to the focused widget
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if !f.IsFocused() || len(f.fields) == 0 {
		return nil
	}

	if kp, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kp, f.keyMap.Up):
			f.move(-1)
			return nil
		case key.Matches(kp, f.keyMap.Down):
			f.move(1)
			return nil
		case key.Matches(kp, f.keyMap.Home):
			f.cursor = 0
			f.scroll()
			return nil
		case key.Matches(kp, f.keyMap.End):
			f.cursor = len(f.fields) - 1
			f.scroll()
			return nil
		}
	}

	return f.fields[f.cursor].control.Update(msg)
}

// move advances the cursor, skipping read-only fields
func (f *Form) move(delta int) {
	next := f.cursor
	for range f.fields {
		next += delta
		if next < 0 || next >= len(f.fields) {
			return
		}
		if f.fields[next].control.Interactive() {
			f.cursor = next
			f.scroll()
			return
		}
	}
}

// scroll keeps the cursor within the visible rows
func (f *Form) scroll() {
	rows := f.visibleRows()
	if rows <= 0 {
		return
	}
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+rows {
		f.offset = f.cursor - rows + 1
	}
}

func (f *Form) visibleRows() int {
	if f.Height <= 0 {
		return len(f.fields)
	}
	return f.Height
}

// SetSize implements core.Sizeable
func (f *Form) SetSize(width, height int) tea.Cmd {
	f.SizeableBase.SetSize(width, height)
	f.scroll()
	return nil
}

// View implements core.Component
func (f *Form) View() string {
	s := styles.CurrentTheme().S()
	if len(f.fields) == 0 {
		return s.Muted.Render("Nothing to configure on this tab.")
	}

	end := min(len(f.fields), f.offset+f.visibleRows())
	rows := make([]string, 0, end-f.offset)
	for i := f.offset; i < end; i++ {
		fd := f.fields[i]
		focused := f.IsFocused() && i == f.cursor

		label := s.Label.Render(fd.control.Label())
		if focused {
			label = s.LabelFocused.Render("› " + fd.control.Label())
		}

		if fd.control.Kind() == widget.KindTrigger {
			// Buttons render their own label
			label = s.Label.Render("")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, fd.control.View(focused)))
	}
	return strings.Join(rows, "\n")
}
