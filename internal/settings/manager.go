// Package settings saves the values of registered widgets to timestamped JSON
// files and restores them.
//
// The three operations (Save, Load, SetDirectory) never fail past their
// boundary: every error is caught and returned inside a Result, whose String
// method produces the message shown in the status widget.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/widget"
)

const (
	// StatusID is the identifier of the widget that displays load status.
	StatusID = "load_save_config.config_status"

	// TimestampLayout names saved files: YYYYMMDD-HHMMSS.
	TimestampLayout = "20060102-150405"

	fileExt = ".json"
)

// Manager runs save, load and directory changes against a registry.
type Manager struct {
	registry *registry.Registry

	mu  sync.RWMutex
	dir string

	statusID string
	now      func() time.Time
	logger   *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now for naming saved files.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithStatusID changes the identifier of the status display widget.
func WithStatusID(id string) Option {
	return func(m *Manager) { m.statusID = id }
}

// NewManager creates a manager writing to dir. The directory is created on
// first save, or earlier by EnsureDir.
func NewManager(reg *registry.Registry, dir string, opts ...Option) *Manager {
	m := &Manager{
		registry: reg,
		dir:      dir,
		statusID: StatusID,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the current settings directory
func (m *Manager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// EnsureDir creates the current settings directory if it is missing.
func (m *Manager) EnsureDir() error {
	dir := m.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}
	return nil
}

// Snapshot returns the identifier/value pairs Save would write: every
// registered widget except triggers, file pickers and read-only widgets.
func (m *Manager) Snapshot() map[string]any {
	values := make(map[string]any)
	for _, e := range m.registry.Entries() {
		w := e.Widget
		if !w.Kind().Persistable() || !w.Interactive() {
			continue
		}
		values[e.ID] = w.Value()
	}
	return values
}

// Save writes the snapshot as indented JSON to dest, or to a timestamped file
// in the settings directory when dest is empty.
func (m *Manager) Save(dest string) (res Result) {
	res = Result{Op: OpSave}
	defer func() { m.recovered(&res, recover()) }()

	values := m.Snapshot()
	m.logger.Printf("Settings: saving %d of %d components", len(values), m.registry.Len())

	path := dest
	if path == "" {
		next, err := m.nextPath()
		if err != nil {
			res.Err = err
			m.logger.Printf("Settings: save failed: %v", err)
			return res
		}
		path = next
	}
	res.Path = path

	data, err := marshal(values)
	if err != nil {
		res.Err = fmt.Errorf("failed to marshal settings: %w", err)
		m.logger.Printf("Settings: %v", res.Err)
		return res
	}

	if err := writeFileAtomic(path, data); err != nil {
		res.Err = err
		m.logger.Printf("Settings: save failed: %v", err)
		return res
	}

	m.logger.Printf("Settings: saved to %s", path)
	return res
}

// maxSameSecondSaves bounds the -N suffixes tried for one timestamp.
const maxSameSecondSaves = 1000

// nextPath picks <dir>/<timestamp>.json, adding a -N suffix when a save in
// the same second already claimed the name. Probing stops at the first Stat
// error other than a hit; the write then reports it.
func (m *Manager) nextPath() (string, error) {
	dir := m.Dir()
	stamp := m.now().Format(TimestampLayout)
	path := filepath.Join(dir, stamp+fileExt)
	for n := 1; n <= maxSameSecondSaves; n++ {
		if _, err := os.Stat(path); err != nil {
			return path, nil
		}
		path = filepath.Join(dir, stamp+"-"+strconv.Itoa(n)+fileExt)
	}
	return "", &IOError{Op: "name", Path: filepath.Join(dir, stamp+fileExt), Err: fmt.Errorf("more than %d saves in one second", maxSameSecondSaves)}
}

// Load reads a saved file and builds one update per registered, persistable
// widget named in it. Unknown identifiers are skipped. The status widget, if
// registered, always receives the status message.
func (m *Manager) Load(src string) (res LoadResult) {
	defer func() {
		if res.Updates == nil {
			res.Updates = make(map[widget.Widget]Update)
		}
		res.Op = OpLoad
		m.recovered(&res.Result, recover())
		if status, err := m.registry.WidgetByID(m.statusID); err == nil {
			res.Updates[status] = Update{Value: res.Result.String(), Set: true}
		}
	}()
	return m.load(src)
}

func (m *Manager) load(src string) LoadResult {
	res := LoadResult{
		Result:  Result{Op: OpLoad, Path: src},
		Updates: make(map[widget.Widget]Update),
	}

	if src == "" {
		res.Err = ErrFileNotSelected
		return res
	}

	data, err := os.ReadFile(src)
	if err != nil {
		res.Err = &IOError{Op: "read", Path: src, Err: err}
		m.logger.Printf("Settings: load failed: %v", res.Err)
		return res
	}

	keys, values, err := decodeOrdered(data)
	if err != nil {
		res.Err = &ParseError{Path: src, Err: err}
		m.logger.Printf("Settings: load failed: %v", res.Err)
		return res
	}

	for _, id := range keys {
		w, err := m.registry.WidgetByID(id)
		if err != nil || !w.Kind().Persistable() {
			res.Skipped = append(res.Skipped, id)
			continue
		}
		res.Updates[w] = Update{Value: values[id], Set: true}
		res.Applied = append(res.Applied, id)
	}

	m.logger.Printf("Settings: loaded %d components from %s (%d skipped)", len(res.Applied), src, len(res.Skipped))
	return res
}

// SetDirectory creates path if needed and makes it the settings directory.
func (m *Manager) SetDirectory(path string) (res Result) {
	res = Result{Op: OpSetDirectory, Path: path}
	defer func() { m.recovered(&res, recover()) }()
	if path == "" {
		res.Err = fmt.Errorf("directory path is empty")
		return res
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		res.Err = &IOError{Op: "create", Path: path, Err: err}
		m.logger.Printf("Settings: %v", res.Err)
		return res
	}

	m.mu.Lock()
	m.dir = path
	m.mu.Unlock()

	m.logger.Printf("Settings: directory set to %s", path)
	return res
}

// recovered turns a panic raised by a widget into the result's error.
func (m *Manager) recovered(res *Result, r any) {
	if r != nil {
		res.Err = fmt.Errorf("unexpected failure: %v", r)
		m.logger.Printf("Settings: recovered from panic: %v", r)
	}
}

func marshal(values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeOrdered parses a flat JSON object, keeping its key order.
func decodeOrdered(data []byte) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}

	var keys []string
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("value of %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("unexpected data after JSON object")
	}
	return keys, values, nil
}

// writeFileAtomic creates the parent directory and writes data via a temp
// file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
