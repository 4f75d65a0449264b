// Package api contains the REST handlers for the admin backend.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"commerce-admin-core/internal/domain"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes. Unexpected failures
// are logged and masked behind a generic 500.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
