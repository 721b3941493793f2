package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/state"
	"github.com/billie-coop/webui/internal/widget"
)

// ComponentInfo describes one registered widget
type ComponentInfo struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        string   `json:"kind"`
	Interactive bool     `json:"interactive"`
	Value       any      `json:"value"`
	Options     []string `json:"options,omitempty"`
}

// optionLister is implemented by widgets with a fixed set of values
type optionLister interface {
	Options() []string
}

func componentInfo(id string, w widget.Widget) ComponentInfo {
	info := ComponentInfo{
		ID:          id,
		Label:       w.Label(),
		Kind:        w.Kind().String(),
		Interactive: w.Interactive(),
		Value:       w.Value(),
	}
	if ol, ok := w.(optionLister); ok {
		info.Options = ol.Options()
	}
	return info
}

// SetValueRequest is the body of PUT /api/components/{id}
type SetValueRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

// PathRequest is the body of the config and directory endpoints
type PathRequest struct {
	Path string `json:"path"`
}

// DirectoryRequest is the body of PUT /api/settings-dir
type DirectoryRequest struct {
	Path string `json:"path" validate:"required"`
}

// LoadResponse is the data of a successful load
type LoadResponse struct {
	Path     string   `json:"path"`
	Applied  []string `json:"applied"`
	Skipped  []string `json:"skipped"`
	Rejected string   `json:"rejected,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendOK(w, "", map[string]any{
		"status":       "ok",
		"settings_dir": s.settings.Dir(),
		"components":   s.registry.Len(),
	})
}

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.Entries()
	components := make([]ComponentInfo, 0, len(entries))
	for _, e := range entries {
		components = append(components, componentInfo(e.ID, e.Widget))
	}
	sendOK(w, "", components)
}

func (s *Server) handleSetComponent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	wd, err := s.registry.WidgetByID(id)
	if errors.Is(err, registry.ErrUnknownID) {
		sendErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if wd.Kind() == widget.KindTrigger {
		sendErrorResponse(w, "Component "+id+" holds no value", http.StatusBadRequest)
		return
	}

	var req SetValueRequest
	if !s.decode(w, r, &req) {
		return
	}
	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		sendErrorResponse(w, "Invalid value", http.StatusBadRequest)
		return
	}
	if err := wd.SetValue(value); err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendOK(w, "Updated "+id, componentInfo(id, wd))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !s.decodeOptional(w, r, &req) {
		return
	}

	res := s.settings.Save(req.Path)
	if !res.OK() {
		sendErrorResponse(w, res.String(), http.StatusInternalServerError)
		return
	}
	s.record(res.Path, state.ActionSaved)
	sendOK(w, res.String(), PathRequest{Path: res.Path})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !s.decodeOptional(w, r, &req) {
		return
	}

	res := s.settings.Load(req.Path)
	// Apply even on failure so the status widget reports it
	applyErr := res.Apply()

	switch {
	case errors.Is(res.Err, settings.ErrFileNotSelected):
		sendErrorResponse(w, res.String(), http.StatusBadRequest)
		return
	case errors.Is(res.Err, os.ErrNotExist):
		sendErrorResponse(w, res.String(), http.StatusNotFound)
		return
	case errors.As(res.Err, new(*settings.ParseError)):
		sendErrorResponse(w, res.String(), http.StatusUnprocessableEntity)
		return
	case res.Err != nil:
		sendErrorResponse(w, res.String(), http.StatusInternalServerError)
		return
	}

	s.record(res.Path, state.ActionLoaded)
	data := LoadResponse{Path: res.Path, Applied: res.Applied, Skipped: res.Skipped}
	if applyErr != nil {
		data.Rejected = applyErr.Error()
	}
	sendOK(w, res.String(), data)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := settings.ListSaved(s.settings.Dir())
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []settings.SavedFile{}
	}
	sendOK(w, "", files)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	recent := []state.RecentFile{}
	if s.history != nil {
		recent = append(recent, s.history.Recent()...)
	}
	sendOK(w, "", recent)
}

func (s *Server) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	if s.history != nil {
		if err := s.history.Clear(); err != nil {
			sendErrorResponse(w, "Failed to clear history: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	sendOK(w, "History cleared", nil)
}

func (s *Server) handleGetDirectory(w http.ResponseWriter, r *http.Request) {
	sendOK(w, "", PathRequest{Path: s.settings.Dir()})
}

func (s *Server) handleSetDirectory(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if !s.decode(w, r, &req) {
		return
	}

	res := s.settings.SetDirectory(req.Path)
	if !res.OK() {
		sendErrorResponse(w, res.String(), http.StatusInternalServerError)
		return
	}
	sendOK(w, res.String(), PathRequest{Path: res.Path})
}

// decode reads and validates a required JSON body
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		sendErrorResponse(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

// decodeOptional is like decode but accepts an empty body
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) record(path string, action state.Action) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(path, action, s.now()); err != nil {
		log.Printf("State: failed to record %s: %v", path, err)
	}
}

// validationMessage turns validator errors into a short message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "Field " + fe.Field() + " failed validation: " + fe.Tag()
	}
	return err.Error()
}
