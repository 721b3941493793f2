package widget

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/webui/internal/tui/styles"
)

// Button is a trigger widget. It holds no value.
type Button struct {
	base
	OnPress func() tea.Cmd
}

// NewButton creates a button that calls onPress when activated
func NewButton(label string, onPress func() tea.Cmd) *Button {
	return &Button{base: newBase(label), OnPress: onPress}
}

// Kind implements Widget
func (b *Button) Kind() Kind { return KindTrigger }

// Value is always nil for buttons
func (b *Button) Value() any { return nil }

// SetValue always fails: buttons hold no value
func (b *Button) SetValue(v any) error {
	return &TypeError{Widget: b.label, Want: "nothing (trigger)", Got: v}
}

// Press runs the button's action
func (b *Button) Press() tea.Cmd {
	if !b.interactive || b.OnPress == nil {
		return nil
	}
	return b.OnPress()
}

// Update presses the button on enter or space
func (b *Button) Update(msg tea.Msg) tea.Cmd {
	if isKey(msg, "enter", "space", " ") {
		return b.Press()
	}
	return nil
}

// View renders the button
func (b *Button) View(focused bool) string {
	s := styles.CurrentTheme().S()
	if focused {
		return s.ButtonFocused.Render(b.label)
	}
	return s.Button.Render(b.label)
}

// FilePicker selects a file path. Its value is the selected path and it is
// never persisted. Candidates (typically saved config files) can be cycled
// with ctrl+n / ctrl+p, or a path can be typed directly.
type FilePicker struct {
	base

	input      *TextBox
	candidates []string
	index      int
	extensions []string
}

// NewFilePicker creates a file picker restricted to the given extensions
// (e.g. ".json"). No extensions means any file.
func NewFilePicker(label string, extensions ...string) *FilePicker {
	input := NewTextBox(label, "")
	input.Placeholder("type a path or press ctrl+n")
	return &FilePicker{
		base:       newBase(label),
		input:      input,
		index:      -1,
		extensions: extensions,
	}
}

// Kind implements Widget
func (f *FilePicker) Kind() Kind { return KindFilePicker }

// Value returns the selected path, or "" when nothing is selected
func (f *FilePicker) Value() any { return f.Path() }

// Path returns the selected path
func (f *FilePicker) Path() string { return f.input.Text() }

// SetValue selects a path
func (f *FilePicker) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &TypeError{Widget: f.label, Want: "path", Got: v}
	}
	if s != "" && !f.accepts(s) {
		return &TypeError{Widget: f.label, Want: "file with extension " + f.extensionList(), Got: v}
	}
	f.index = slices.Index(f.candidates, s)
	return f.input.SetValue(s)
}

// SetCandidates replaces the list offered by ctrl+n / ctrl+p.
func (f *FilePicker) SetCandidates(paths []string) {
	f.candidates = f.candidates[:0]
	for _, p := range paths {
		if f.accepts(p) {
			f.candidates = append(f.candidates, p)
		}
	}
	f.index = slices.Index(f.candidates, f.Path())
}

// Candidates returns the selectable paths
func (f *FilePicker) Candidates() []string { return f.candidates }

func (f *FilePicker) accepts(path string) bool {
	if len(f.extensions) == 0 {
		return true
	}
	return slices.Contains(f.extensions, filepath.Ext(path))
}

func (f *FilePicker) extensionList() string {
	if len(f.extensions) == 0 {
		return "*"
	}
	return strings.Join(f.extensions, ", ")
}

// Update cycles candidates or edits the path
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	if !f.interactive {
		return nil
	}
	switch {
	case isKey(msg, "ctrl+n"):
		f.cycle(1)
	case isKey(msg, "ctrl+p"):
		f.cycle(-1)
	default:
		return f.input.Update(msg)
	}
	return nil
}

func (f *FilePicker) cycle(delta int) {
	if len(f.candidates) == 0 {
		return
	}
	if f.index < 0 {
		f.index = 0
	} else {
		f.index = (f.index + delta + len(f.candidates)) % len(f.candidates)
	}
	f.input.setText(f.candidates[f.index])
}

// View renders the selected path and the candidate position
func (f *FilePicker) View(focused bool) string {
	view := f.input.View(focused)
	if len(f.candidates) > 0 {
		pos := "-"
		if f.index >= 0 {
			pos = strconv.Itoa(f.index + 1)
		}
		hint := lipgloss.NewStyle().Foreground(styles.CurrentTheme().FgSubtle).
			Render("  (" + pos + "/" + strconv.Itoa(len(f.candidates)) + ")")
		view += hint
	}
	return view
}
