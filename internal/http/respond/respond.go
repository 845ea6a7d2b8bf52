// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err as a plain-text message with the status its kind maps to.
// Unexpected errors are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *movement.ValidationError
	var storeErr *movement.StoreError

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, export.ErrUnknownFormat):
		http.Error(w, export.ErrUnknownFormat.Error(), http.StatusBadRequest)
	case errors.Is(err, identity.ErrInvalidCredentials):
		http.Error(w, identity.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, identity.ErrNoSession), errors.Is(err, movement.ErrNotAuthenticated):
		http.Error(w, identity.ErrNoSession.Error(), http.StatusUnauthorized)
	case errors.Is(err, identity.ErrEmailAlreadyRegistered):
		http.Error(w, identity.ErrEmailAlreadyRegistered.Error(), http.StatusConflict)
	case errors.As(err, &storeErr):
		slog.ErrorContext(r.Context(), "store failure", "op", storeErr.Op, "error", storeErr.Err)
		http.Error(w, storeErr.Error(), http.StatusInternalServerError)
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
