package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

// Error represents a structured error response.
type Error struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeForbidden    = "forbidden"
	ErrCodeConflict     = "conflict"
	ErrCodeUnavailable  = "unavailable"
	ErrCodeInternal     = "internal_error"
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
func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, Error{
		Status: status,
		Code:   code,
		Detail: detail,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, detail)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, detail)
}

// writeUnauthorized writes a 401 error response.
func writeUnauthorized(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, detail)
}

// writeForbidden writes a 403 error response.
func writeForbidden(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusForbidden, ErrCodeForbidden, detail)
}

// writeConflict writes a 409 error response.
func writeConflict(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusConflict, ErrCodeConflict, detail)
}

// writeUnavailable writes a 503 error response.
func writeUnavailable(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, detail)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, detail)
}

// writeDomainError maps repository errors onto the HTTP error taxonomy.
//
// A datastore deadline surfaces as 503 so clients know to retry, distinct
// from the business failures (404, 409, 400). Anything unmapped is a 500
// with no internal detail leaked.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, monitoring.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		writeNotFound(w, "resource not found")
	case errors.Is(err, monitoring.ErrDuplicateEntry):
		writeConflict(w, "duplicate entry")
	case errors.Is(err, auth.ErrEmailExists):
		writeConflict(w, "email already registered")
	case errors.Is(err, monitoring.ErrMissingParent):
		writeBadRequest(w, "referenced resource does not exist")
	case errors.Is(err, context.DeadlineExceeded):
		writeUnavailable(w, "datastore timeout, retry later")
	default:
		s.logger.Error(action+" failed", "error", err)
		writeInternalError(w, "internal server error")
	}
}
