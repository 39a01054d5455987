package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/geodesy/core"
)

// errInvalidRequest is the package-level sentinel for client-side validation
// failures: malformed bodies, unknown frame tokens, missing bases.
var errInvalidRequest = errors.New("invalid request")

// statusFromError maps engine and validation errors onto HTTP status codes.
// Unsupported SRIDs and bad frame tokens are client errors; anything else is
// reported as an internal failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, core.ErrUnsupportedSRID),
		errors.Is(err, core.ErrUnknownKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the error as a JSON payload with the status derived from
// its type.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), errorPayload{Error: err.Error()})
}
