package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// APIResponse is the envelope of every response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// sendJSONResponse writes data as JSON with the given status code
func sendJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("API: failed to write response: %v", err)
	}
}

// sendErrorResponse sends an error response with the given message and status code
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSONResponse(w, APIResponse{Success: false, Message: message}, statusCode)
}

// sendOK sends a successful response
func sendOK(w http.ResponseWriter, message string, data any) {
	sendJSONResponse(w, APIResponse{Success: true, Message: message, Data: data}, http.StatusOK)
}
