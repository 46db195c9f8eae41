package route

import (
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// DefaultErrorFunc maps the dispatch errors of this package to status codes
// and everything else to 500.
func DefaultErrorFunc(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}

// StatusOf returns the HTTP status for an error raised by this package.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
