package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/dwelling"
	"github.com/calverly/hearth-core/internal/hub"
	"github.com/calverly/hearth-core/internal/registry"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeConflict   = "conflict"
	ErrCodeInternal   = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeConflict writes a 409 error response.
func writeConflict(w http.ResponseWriter, message string) {
	writeError(w, http.StatusConflict, ErrCodeConflict, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeRegistryError maps registry sentinel errors onto HTTP responses.
// Missing entities map to 404, constraint violations to 409, invalid
// arguments to 400; anything unrecognised is a 500.
func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrDeviceNotFound),
		errors.Is(err, registry.ErrDwellingNotFound),
		errors.Is(err, registry.ErrNoHub):
		writeNotFound(w, err.Error())
	case errors.Is(err, registry.ErrDevicePaired),
		errors.Is(err, registry.ErrNotLock),
		errors.Is(err, registry.ErrNotThermostat),
		errors.Is(err, hub.ErrAlreadyPaired),
		errors.Is(err, hub.ErrNotPaired),
		errors.Is(err, dwelling.ErrHubInstalled),
		errors.Is(err, dwelling.ErrHubNotInstalled):
		writeConflict(w, err.Error())
	case errors.Is(err, device.ErrInvalidType),
		errors.Is(err, device.ErrInvalidName):
		writeBadRequest(w, err.Error())
	default:
		writeInternalError(w, "internal server error")
	}
}
