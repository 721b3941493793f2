// Package widget defines the interactive controls that tabs register in the
// component registry.
//
// Every widget carries a Kind capability tag so persistence code never has to
// inspect concrete types: value widgets are saved and restored, trigger
// widgets (buttons) and file pickers are not. Widgets marked non-interactive
// (read-only displays such as the status box) are skipped on save but can
// still be updated programmatically.
package widget

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Kind is the capability tag carried by every widget.
type Kind int

const (
	// KindValue widgets hold a persisted value.
	KindValue Kind = iota
	// KindTrigger widgets are button-like and hold no value.
	KindTrigger
	// KindFilePicker widgets select a path and are never persisted.
	KindFilePicker
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindTrigger:
		return "trigger"
	case KindFilePicker:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Persistable reports whether widgets of this kind take part in save and load.
func (k Kind) Persistable() bool {
	return k == KindValue
}

// Widget is the handle the registry stores. Implementations must be pointer
// types so that handles are comparable map keys.
type Widget interface {
	Label() string
	Kind() Kind
	Interactive() bool
	Value() any
	SetValue(v any) error
}

// Control is a widget that can be hosted in the terminal UI.
type Control interface {
	Widget
	Update(msg tea.Msg) tea.Cmd
	View(focused bool) string
}

// TypeError is returned by SetValue when a value cannot be adopted.
type TypeError struct {
	Widget string
	Want   string
	Got    any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: cannot use %v (%T) as %s", e.Widget, e.Got, e.Got, e.Want)
}

// base holds the state shared by all widgets.
type base struct {
	label       string
	interactive bool
}

func newBase(label string) base {
	return base{label: label, interactive: true}
}

func (b *base) Label() string { return b.label }

func (b *base) Interactive() bool { return b.interactive }

// SetInteractive marks the widget as editable or read-only.
func (b *base) SetInteractive(interactive bool) { b.interactive = interactive }

// toFloat converts the numeric types that JSON decoding and Go callers
// produce into a float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isKey(msg tea.Msg, keys ...string) bool {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return false
	}
	s := k.String()
	for _, want := range keys {
		if s == want {
			return true
		}
	}
	return false
}
