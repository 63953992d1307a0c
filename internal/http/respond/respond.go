package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the body written for every failed request.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error writes an error response with the shared error body.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Type: "error", Message: message})
}
