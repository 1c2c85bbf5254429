// Package httpx holds the JSON response helpers every handler writes
// through, so the wire shape of errors stays uniform across the API.
package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the body of every non-2xx response. Code is a stable
// machine-readable slug; Details carries field-level validation
// problems when there are any.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{Error: msg, Code: code, Details: details})
}

// NoContent answers deletes and archives that have nothing to return.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
