package events

import "github.com/billie-coop/webui/internal/settings"

// EventType identifies the type of event
type EventType string

const (
	// Settings events
	ConfigSavedEvent          EventType = "settings.saved"
	ConfigLoadedEvent         EventType = "settings.loaded"
	SettingsDirChangedEvent   EventType = "settings.dir.changed"
	SettingsFilesChangedEvent EventType = "settings.files.changed"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	DialogOpenEvent    EventType = "ui.dialog.open"
	DialogCloseEvent   EventType = "ui.dialog.close"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload any
}

// Event payload types

// ResultPayload carries the outcome of Save or SetDirectory.
type ResultPayload struct {
	Result settings.Result
}

// LoadPayload carries the outcome of Load and any errors from applying it.
type LoadPayload struct {
	Result   settings.LoadResult
	ApplyErr error
}

// FilesChangedPayload lists the files that changed in the settings directory.
type FilesChangedPayload struct {
	Dir   string
	Paths []string
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}

type DialogPayload struct {
	DialogID string
	Data     any
}
