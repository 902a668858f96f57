package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"weighbridge-backend/internal/apperrors"
)

// JSON writes data with the given status. A nil payload encodes as JSON
// null, which the gate UI relies on for "no match" lookups.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a JSON error body with a human-readable message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ErrorFrom maps a service error onto its HTTP status via the apperrors
// sentinels and writes it.
func ErrorFrom(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUpstreamStore):
		status = http.StatusBadGateway
	}
	Error(w, status, err.Error())
}
