// Package registry maps component identifiers of the form "<tab>.<field>" to
// widget handles and back.
//
// A Registry is built once at startup and passed to every tab builder, which
// registers its widgets under the tab's name. Entries are never removed;
// registering an identifier twice replaces the earlier widget.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/billie-coop/webui/internal/csync"
	"github.com/billie-coop/webui/internal/widget"
)

var (
	// ErrUnknownID is matched by lookups of an identifier that was never registered.
	ErrUnknownID = errors.New("unknown component id")
	// ErrUnknownWidget is matched by lookups of a widget that was never registered.
	ErrUnknownWidget = errors.New("unregistered widget")
)

// LookupError describes a failed registry lookup.
type LookupError struct {
	Key string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Key)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Field is one named widget inside a tab.
type Field struct {
	Name   string
	Widget widget.Widget
}

// Entry is a registered identifier with its widget.
type Entry struct {
	ID     string
	Widget widget.Widget
}

// Tab returns the tab part of the entry's identifier
func (e Entry) Tab() string {
	tab, _, _ := strings.Cut(e.ID, ".")
	return tab
}

// Field returns the field part of the entry's identifier
func (e Entry) Field() string {
	_, field, _ := strings.Cut(e.ID, ".")
	return field
}

// Registry is a bidirectional identifier/widget mapping.
type Registry struct {
	byID     *csync.Map[string, widget.Widget]
	byWidget *csync.Map[widget.Widget, string]
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		byID:     csync.NewMap[string, widget.Widget](),
		byWidget: csync.NewMap[widget.Widget, string](),
	}
}

// ID joins a tab and field name into a component identifier
func ID(tab, field string) string {
	return tab + "." + field
}

// Register adds every field of a tab. Map iteration order is not stable, so
// tabs that care about display order should use RegisterOrdered.
func (r *Registry) Register(tab string, fields map[string]widget.Widget) {
	for name, w := range fields {
		r.add(ID(tab, name), w)
	}
}

// RegisterOrdered adds the fields of a tab in the given order
func (r *Registry) RegisterOrdered(tab string, fields ...Field) {
	for _, f := range fields {
		r.add(ID(tab, f.Name), f.Widget)
	}
}

// add keeps both directions in lockstep: a replaced widget loses its reverse
// entry, and a widget moved to a new id loses its old id.
func (r *Registry) add(id string, w widget.Widget) {
	if prev, ok := r.byID.Get(id); ok && prev != w {
		r.byWidget.Delete(prev)
	}
	if prevID, ok := r.byWidget.Get(w); ok && prevID != id {
		r.byID.Delete(prevID)
	}
	r.byID.Set(id, w)
	r.byWidget.Set(w, id)
}

// Widgets returns all registered widgets in registration order
func (r *Registry) Widgets() []widget.Widget {
	return r.byID.Values()
}

// IDs returns all registered identifiers in registration order
func (r *Registry) IDs() []string {
	return r.byID.Keys()
}

// Entries returns all registrations in order
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, r.byID.Len())
	r.byID.Range(func(id string, w widget.Widget) bool {
		entries = append(entries, Entry{ID: id, Widget: w})
		return true
	})
	return entries
}

// Tab returns the registrations of one tab in order
func (r *Registry) Tab(tab string) []Entry {
	var entries []Entry
	prefix := tab + "."
	r.byID.Range(func(id string, w widget.Widget) bool {
		if strings.HasPrefix(id, prefix) {
			entries = append(entries, Entry{ID: id, Widget: w})
		}
		return true
	})
	return entries
}

// Len returns the number of registered identifiers
func (r *Registry) Len() int {
	return r.byID.Len()
}

// WidgetByID returns the widget registered under id
func (r *Registry) WidgetByID(id string) (widget.Widget, error) {
	w, ok := r.byID.Get(id)
	if !ok {
		return nil, &LookupError{Key: id, Err: ErrUnknownID}
	}
	return w, nil
}

// IDByWidget returns the identifier w was registered under
func (r *Registry) IDByWidget(w widget.Widget) (string, error) {
	id, ok := r.byWidget.Get(w)
	if !ok {
		return "", &LookupError{Key: fmt.Sprintf("%T(%s)", w, labelOf(w)), Err: ErrUnknownWidget}
	}
	return id, nil
}

func labelOf(w widget.Widget) string {
	if w == nil {
		return "<nil>"
	}
	return w.Label()
}
