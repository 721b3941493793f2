package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/widget"
)

var fixedTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

func fixedClock() time.Time { return fixedTime }

type fixture struct {
	reg         *registry.Registry
	mgr         *Manager
	dir         string
	temperature *widget.Number
	model       *widget.TextBox
	vision      *widget.Checkbox
	provider    *widget.Dropdown
	run         *widget.Button
	file        *widget.FilePicker
	status      *widget.TextBox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reg:         registry.New(),
		dir:         filepath.Join(t.TempDir(), "webui_settings"),
		temperature: widget.NewSlider("Temperature", 0.7, 0, 2, 0.1),
		model:       widget.NewTextBox("Model", "gpt-4o"),
		vision:      widget.NewCheckbox("Use Vision", true),
		provider:    widget.NewDropdown("Provider", []string{"openai", "ollama"}, "ollama"),
		run:         widget.NewButton("Run", nil),
		file:        widget.NewFilePicker("Config File", ".json"),
		status:      widget.NewStatusBox("Status"),
	}
	f.reg.RegisterOrdered("main",
		registry.Field{Name: "temperature", Widget: f.temperature},
		registry.Field{Name: "model", Widget: f.model},
		registry.Field{Name: "use_vision", Widget: f.vision},
		registry.Field{Name: "provider", Widget: f.provider},
		registry.Field{Name: "run_button", Widget: f.run},
	)
	f.reg.RegisterOrdered("load_save_config",
		registry.Field{Name: "config_file", Widget: f.file},
		registry.Field{Name: "config_status", Widget: f.status},
	)
	f.mgr = NewManager(f.reg, f.dir, WithClock(fixedClock))
	return f
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return out
}

func TestSave_WritesTimestampedFile(t *testing.T) {
	f := newFixture(t)

	res := f.mgr.Save("")
	if !res.OK() {
		t.Fatalf("Save failed: %v", res.Err)
	}

	want := filepath.Join(f.dir, "20250314-150926.json")
	if res.Path != want {
		t.Fatalf("Save path = %q, want %q", res.Path, want)
	}
	if got := res.String(); got != "Settings saved to "+want {
		t.Fatalf("status = %q", got)
	}

	saved := readJSON(t, res.Path)
	expected := map[string]any{
		"main.temperature": 0.7,
		"main.model":       "gpt-4o",
		"main.use_vision":  true,
		"main.provider":    "ollama",
	}
	if !reflect.DeepEqual(saved, expected) {
		t.Fatalf("saved = %v, want %v", saved, expected)
	}
}

func TestSave_IndentsWithFourSpaces(t *testing.T) {
	f := newFixture(t)

	res := f.mgr.Save("")
	if !res.OK() {
		t.Fatalf("Save failed: %v", res.Err)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"main.model\": \"gpt-4o\"") {
		t.Fatalf("expected 4-space indentation, got:\n%s", data)
	}
}

func TestSave_ExcludesTriggersFilesAndReadOnly(t *testing.T) {
	f := newFixture(t)
	f.model.SetInteractive(false)

	snapshot := f.mgr.Snapshot()
	for _, id := range []string{"main.run_button", "load_save_config.config_file", "load_save_config.config_status", "main.model"} {
		if _, ok := snapshot[id]; ok {
			t.Errorf("snapshot unexpectedly contains %s", id)
		}
	}
	if len(snapshot) != 3 {
		t.Fatalf("snapshot = %v, want 3 entries", snapshot)
	}
}

func TestSave_ExplicitDestination(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(t.TempDir(), "nested", "deeper", "mine.json")

	res := f.mgr.Save(dest)
	if !res.OK() {
		t.Fatalf("Save failed: %v", res.Err)
	}
	if res.Path != dest {
		t.Fatalf("Save path = %q, want %q", res.Path, dest)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination not written: %v", err)
	}
	if _, err := os.Stat(f.dir); !os.IsNotExist(err) {
		t.Fatalf("settings directory should not be touched by explicit saves")
	}
}

func TestSave_CreatesMissingDirectory(t *testing.T) {
	f := newFixture(t)
	if _, err := os.Stat(f.dir); !os.IsNotExist(err) {
		t.Fatalf("precondition: %s should not exist", f.dir)
	}

	res := f.mgr.Save("")
	if !res.OK() {
		t.Fatalf("Save failed: %v", res.Err)
	}
	info, err := os.Stat(f.dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("settings directory was not created: %v", err)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestSave_SameSecondDoesNotOverwrite(t *testing.T) {
	f := newFixture(t)

	first := f.mgr.Save("")
	second := f.mgr.Save("")
	if !first.OK() || !second.OK() {
		t.Fatalf("saves failed: %v / %v", first.Err, second.Err)
	}
	if first.Path == second.Path {
		t.Fatalf("second save overwrote %s", first.Path)
	}
	if filepath.Base(second.Path) != "20250314-150926-1.json" {
		t.Fatalf("second save path = %s", second.Path)
	}
}

func TestSave_ReportsIOFailure(t *testing.T) {
	f := newFixture(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := f.mgr.Save(filepath.Join(blocker, "child.json"))
	if res.OK() {
		t.Fatal("expected save below a regular file to fail")
	}
	var ioErr *IOError
	if !errors.As(res.Err, &ioErr) {
		t.Fatalf("error = %T %v, want *IOError", res.Err, res.Err)
	}
	if !strings.HasPrefix(res.String(), "Error saving settings: ") {
		t.Fatalf("status = %q", res.String())
	}
}

func TestSave_TimestampedPathBelowFileFails(t *testing.T) {
	f := newFixture(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(f.reg, blocker, WithClock(fixedClock))

	done := make(chan Result, 1)
	go func() { done <- mgr.Save("") }()

	select {
	case res := <-done:
		var ioErr *IOError
		if !errors.As(res.Err, &ioErr) {
			t.Fatalf("error = %T %v, want *IOError", res.Err, res.Err)
		}
		if !strings.HasPrefix(res.String(), "Error saving settings: ") {
			t.Fatalf("status = %q", res.String())
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Save did not return when the settings dir is a regular file")
	}
}

func TestRoundTrip(t *testing.T) {
	f := newFixture(t)
	before := f.mgr.Snapshot()

	saved := f.mgr.Save("")
	if !saved.OK() {
		t.Fatalf("Save failed: %v", saved.Err)
	}

	loaded := f.mgr.Load(saved.Path)
	if !loaded.OK() {
		t.Fatalf("Load failed: %v", loaded.Err)
	}

	for _, e := range f.reg.Entries() {
		want, persisted := before[e.ID]
		u := loaded.For(e.Widget)
		if e.ID == StatusID {
			continue
		}
		if !persisted {
			if u != NoOp {
				t.Errorf("%s: unexpected update %+v", e.ID, u)
			}
			continue
		}
		if !u.Set || !reflect.DeepEqual(u.Value, want) {
			t.Errorf("%s: update = %+v, want %v", e.ID, u, want)
		}
	}
}

func TestLoad_AppliesValues(t *testing.T) {
	f := newFixture(t)
	src := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"main.temperature": 1.3, "main.model": "llama3", "main.use_vision": false, "main.provider": "openai"}`
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res := f.mgr.Load(src)
	if !res.OK() {
		t.Fatalf("Load failed: %v", res.Err)
	}
	if err := res.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if f.temperature.Float() != 1.3 || f.model.Text() != "llama3" || f.vision.Checked() || f.provider.Value() != "openai" {
		t.Fatalf("widgets not updated: %v %v %v %v", f.temperature.Value(), f.model.Value(), f.vision.Value(), f.provider.Value())
	}
	if got := f.status.Text(); got != "Settings loaded from "+src {
		t.Fatalf("status widget = %q", got)
	}
	if want := []string{"main.temperature", "main.model", "main.use_vision", "main.provider"}; !reflect.DeepEqual(res.Applied, want) {
		t.Fatalf("Applied = %v, want %v", res.Applied, want)
	}
}

func TestLoad_UnknownKeysAreIgnored(t *testing.T) {
	f := newFixture(t)
	src := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"main.temperature": 0.2, "main.removed_field": 42}`
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res := f.mgr.Load(src)
	if !res.OK() {
		t.Fatalf("Load failed: %v", res.Err)
	}
	if got := res.For(f.temperature); !got.Set || got.Value != 0.2 {
		t.Fatalf("temperature update = %+v", got)
	}
	if !reflect.DeepEqual(res.Skipped, []string{"main.removed_field"}) {
		t.Fatalf("Skipped = %v", res.Skipped)
	}
	// temperature + status
	if len(res.Updates) != 2 {
		t.Fatalf("Updates = %v, want 2 entries", res.Updates)
	}
	if !strings.HasPrefix(res.String(), "Settings loaded from ") {
		t.Fatalf("status = %q", res.String())
	}
}

func TestLoad_SkipsTriggerAndFileKeys(t *testing.T) {
	f := newFixture(t)
	src := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"main.run_button": "Run", "load_save_config.config_file": "/tmp/x.json"}`
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res := f.mgr.Load(src)
	if !res.OK() {
		t.Fatalf("Load failed: %v", res.Err)
	}
	if res.For(f.run) != NoOp || res.For(f.file) != NoOp {
		t.Fatal("trigger and file-picker widgets must not receive updates")
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped = %v", res.Skipped)
	}
}

func TestLoad_NoFileSelected(t *testing.T) {
	f := newFixture(t)

	res := f.mgr.Load("")
	if !errors.Is(res.Err, ErrFileNotSelected) {
		t.Fatalf("error = %v, want ErrFileNotSelected", res.Err)
	}
	if len(res.Updates) != 1 {
		t.Fatalf("Updates = %v, want only the status entry", res.Updates)
	}
	if got := res.For(f.status); got.Value != "No file selected" {
		t.Fatalf("status update = %+v", got)
	}
}

func TestLoad_NoFileSelectedWithoutStatusWidget(t *testing.T) {
	mgr := NewManager(registry.New(), t.TempDir())

	res := mgr.Load("")
	if len(res.Updates) != 0 {
		t.Fatalf("Updates = %v, want none", res.Updates)
	}
	if res.String() != "No file selected" {
		t.Fatalf("status = %q", res.String())
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(malformed, []byte(`{"main.model": `), 0o644); err != nil {
		t.Fatal(err)
	}
	array := filepath.Join(dir, "array.json")
	if err := os.WriteFile(array, []byte(`[1, 2]`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr any
	}{
		{name: "missing", path: filepath.Join(dir, "missing.json"), wantErr: new(*IOError)},
		{name: "malformed", path: malformed, wantErr: new(*ParseError)},
		{name: "not_an_object", path: array, wantErr: new(*ParseError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res := f.mgr.Load(tt.path)
			if res.OK() {
				t.Fatal("expected load to fail")
			}
			if !errors.As(res.Err, tt.wantErr) {
				t.Fatalf("error = %T %v", res.Err, res.Err)
			}
			if len(res.Updates) != 1 {
				t.Fatalf("Updates = %v, want only the status entry", res.Updates)
			}
			status := res.For(f.status).Value.(string)
			if !strings.HasPrefix(status, "Error loading file: ") {
				t.Fatalf("status = %q", status)
			}
		})
	}
}

func TestLoad_ApplyReportsRejectedValues(t *testing.T) {
	f := newFixture(t)
	src := filepath.Join(t.TempDir(), "cfg.json")
	content := `{"main.temperature": "hot", "main.model": "llama3"}`
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res := f.mgr.Load(src)
	err := res.Apply()
	var typeErr *widget.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Apply error = %v, want a widget.TypeError", err)
	}
	if f.temperature.Float() != 0.7 {
		t.Fatalf("rejected value changed the widget: %v", f.temperature.Value())
	}
	if f.model.Text() != "llama3" {
		t.Fatal("valid values must still be applied")
	}
}

func TestSetDirectory(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(t.TempDir(), "a", "b")

	first := f.mgr.SetDirectory(target)
	second := f.mgr.SetDirectory(target)
	for _, res := range []Result{first, second} {
		if !res.OK() {
			t.Fatalf("SetDirectory failed: %v", res.Err)
		}
		if res.String() != "Successfully set settings directory to: "+target {
			t.Fatalf("status = %q", res.String())
		}
	}
	if f.mgr.Dir() != target {
		t.Fatalf("Dir() = %q, want %q", f.mgr.Dir(), target)
	}

	saved := f.mgr.Save("")
	if filepath.Dir(saved.Path) != target {
		t.Fatalf("save went to %s, want %s", saved.Path, target)
	}
}

func TestSetDirectory_Failure(t *testing.T) {
	f := newFixture(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	original := f.mgr.Dir()

	for _, path := range []string{"", filepath.Join(blocker, "sub")} {
		res := f.mgr.SetDirectory(path)
		if res.OK() {
			t.Fatalf("SetDirectory(%q) should fail", path)
		}
		if !strings.HasPrefix(res.String(), "Error setting directory: ") {
			t.Fatalf("status = %q", res.String())
		}
	}
	if f.mgr.Dir() != original {
		t.Fatalf("directory changed to %q after failures", f.mgr.Dir())
	}
}

// The worked example: a temperature slider and a run button.
func TestExample_TemperatureAndRunButton(t *testing.T) {
	reg := registry.New()
	widgetA := widget.NewSlider("Temperature", 0.7, 0, 1, 0.1)
	buttonB := widget.NewButton("Run", nil)
	reg.RegisterOrdered("main",
		registry.Field{Name: "temperature", Widget: widgetA},
		registry.Field{Name: "run_button", Widget: buttonB},
	)
	mgr := NewManager(reg, t.TempDir(), WithClock(fixedClock))

	saved := mgr.Save("")
	if got := readJSON(t, saved.Path); !reflect.DeepEqual(got, map[string]any{"main.temperature": 0.7}) {
		t.Fatalf("saved = %v", got)
	}

	loaded := mgr.Load(saved.Path)
	if len(loaded.Updates) != 1 || loaded.For(widgetA) != (Update{Value: 0.7, Set: true}) {
		t.Fatalf("updates = %v", loaded.Updates)
	}
}

type panicWidget struct{}

func (p *panicWidget) Label() string { return "broken" }
func (p *panicWidget) Kind() widget.Kind { return widget.KindValue }
func (p *panicWidget) Interactive() bool { return true }
func (p *panicWidget) Value() any { panic("broken widget") }
func (p *panicWidget) SetValue(v any) error { panic("broken widget") }

func TestSave_RecoversFromPanickingWidget(t *testing.T) {
	reg := registry.New()
	reg.RegisterOrdered("main", registry.Field{Name: "broken", Widget: &panicWidget{}})
	mgr := NewManager(reg, t.TempDir())

	res := mgr.Save("")
	if res.OK() || !strings.Contains(res.String(), "broken widget") {
		t.Fatalf("expected recovered failure, got %q", res.String())
	}
}

func TestListSaved(t *testing.T) {
	f := newFixture(t)
	older := f.mgr.Save("")
	newer := f.mgr.Save("")
	if !older.OK() || !newer.OK() {
		t.Fatalf("saves failed: %v / %v", older.Err, newer.Err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older.Path, past, past); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(f.dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ListSaved(f.dir)
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if got, want := Paths(files), []string{newer.Path, older.Path}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ListSaved = %v, want %v", got, want)
	}

	missing, err := ListSaved(filepath.Join(t.TempDir(), "missing"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("missing directory: %v, %v", missing, err)
	}
}
