package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hszk-dev/monostack/internal/api/middleware"
	"github.com/hszk-dev/monostack/internal/api/route"
	"github.com/hszk-dev/monostack/internal/domain/repository"
)

// WriteError maps errors raised while serving a route to an error response.
// It is the route.ErrorFunc of the API.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, route.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Route not found")
	case errors.Is(err, route.ErrMethodNotAllowed):
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	case errors.Is(err, route.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
	case errors.Is(err, repository.ErrUpstreamUnavailable):
		logError(r, err)
		writeError(w, http.StatusServiceUnavailable, "upstream_unavailable", "Datastore is unavailable")
	default:
		logError(r, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func logError(r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
