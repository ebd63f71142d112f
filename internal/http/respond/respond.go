// Package respond writes JSON bodies and maps service errors to HTTP status
// codes.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pfms/internal/apperr"
	"github.com/MrJamesThe3rd/pfms/internal/auth"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes the status code for err's class. Anything outside the
// taxonomy is logged and reported as a bare 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError

	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, apperr.ErrValidation):
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, apperr.ErrConflict):
		JSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrUnauthenticated):
		JSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Decode reads a JSON body into v. Malformed bodies are validation errors.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid("body", fmt.Sprintf("invalid JSON: %v", err))
	}

	return nil
}

// Owner returns the authenticated owner, writing a 401 when the request
// never passed the auth middleware.
func Owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	owner, ok := auth.OwnerFrom(r.Context())
	if !ok {
		Error(w, r, apperr.ErrUnauthenticated)
	}

	return owner, ok
}

// ID parses a path parameter as a UUID. A malformed id cannot name an owned
// record, so it is reported as not found.
func ID(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		Error(w, r, apperr.ErrNotFound)
		return uuid.Nil, false
	}

	return id, true
}
