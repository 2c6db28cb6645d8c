package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/rs/zerolog"
)

// errorResponse is the uniform error body
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the uniform success body for mutations
type messageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto the HTTP boundary. Anything outside
// the taxonomy is surfaced as a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrUserAlreadyExists),
		errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrInvalidSession),
		errors.Is(err, shared.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrNotItemOwner):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		logger.Error().Err(err).Msg("Request failed with internal error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
