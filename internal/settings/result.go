package settings

import (
	"errors"
	"fmt"

	"github.com/billie-coop/webui/internal/widget"
)

// ErrFileNotSelected is reported by Load when no source path was given.
var ErrFileNotSelected = errors.New("no file selected")

// IOError wraps a filesystem failure while creating, writing or reading.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a config file that is not a JSON object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Op identifies the operation a Result belongs to.
type Op int

const (
	OpSave Op = iota
	OpLoad
	OpSetDirectory
)

// Result is the outcome of a persistence operation. Operations never return
// Go errors; the failure, if any, is carried in Err so the UI layer can decide
// how to render it.
type Result struct {
	Op   Op
	Path string
	Err  error
}

// OK reports whether the operation succeeded
func (r Result) OK() bool { return r.Err == nil }

// String renders the human-readable status message for the result
func (r Result) String() string {
	switch r.Op {
	case OpSave:
		if r.Err != nil {
			return fmt.Sprintf("Error saving settings: %v", r.Err)
		}
		return fmt.Sprintf("Settings saved to %s", r.Path)
	case OpLoad:
		if errors.Is(r.Err, ErrFileNotSelected) {
			return "No file selected"
		}
		if r.Err != nil {
			return fmt.Sprintf("Error loading file: %v", r.Err)
		}
		return fmt.Sprintf("Settings loaded from %s", r.Path)
	case OpSetDirectory:
		if r.Err != nil {
			return fmt.Sprintf("Error setting directory: %v", r.Err)
		}
		return fmt.Sprintf("Successfully set settings directory to: %s", r.Path)
	default:
		return fmt.Sprintf("unknown operation %d", int(r.Op))
	}
}

// Update instructs a widget to adopt a new value.
type Update struct {
	Value any
	Set   bool
}

// NoOp is the update for widgets a load leaves untouched.
var NoOp = Update{}

// LoadResult is the outcome of Load: the status plus one update per widget
// that should change.
type LoadResult struct {
	Result

	Updates map[widget.Widget]Update
	// Applied lists the identifiers that produced an update, in file order.
	Applied []string
	// Skipped lists identifiers in the file that are unknown or not persistable.
	Skipped []string
}

// For returns the update for w, or NoOp
func (r LoadResult) For(w widget.Widget) Update {
	if u, ok := r.Updates[w]; ok {
		return u
	}
	return NoOp
}

// Apply pushes every update into its widget. Widgets that reject their value
// keep their previous value; all rejections are joined into the returned error.
func (r LoadResult) Apply() error {
	var errs []error
	for w, u := range r.Updates {
		if !u.Set {
			continue
		}
		if err := w.SetValue(u.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
