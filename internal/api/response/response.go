// Package response writes the service's JSON response bodies.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error is the body of every error response: a stable machine-readable
// kind plus a human-readable message.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code and body.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Err writes a structured error response.
func Err(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, Error{
		Error:   kind,
		Message: message,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
