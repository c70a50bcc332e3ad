// Package http provides HTTP routing and middleware configuration
// for the vault service.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the vault
// API. It applies JSON content-type enforcement, request logging, and
// bearer-token authentication, and mounts the vault endpoints under
// /api/vault.
//
// Routes:
//
//	GET    /api/vault                    → list records, newest first
//	GET    /api/vault/search?q=         → search by title or tag
//	POST   /api/vault                    → create record
//	PUT    /api/vault/{id}               → full-replace update
//	DELETE /api/vault/{id}               → permanent delete
//	POST   /api/vault/master-key/verify  → verify presented master key
//
// Every route requires a resolved caller identity; the Auth middleware
// rejects requests without a valid token before any handler runs.
func NewRouter(
	vaultHandler *VaultHandler,
	masterKeyHandler *MasterKeyHandler,
	authSecret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the caller identity from the session token
	r.Use(middleware.Auth(authSecret))

	// Mount API routes
	r.Route("/api/vault", func(r chi.Router) {
		r.Get("/", vaultHandler.List)
		r.Get("/search", vaultHandler.Search)
		r.Post("/", vaultHandler.Create)
		r.Put("/{id}", vaultHandler.Update)
		r.Delete("/{id}", vaultHandler.Delete)

		r.Post("/master-key/verify", masterKeyHandler.Verify)
	})

	return r
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a taxonomy error into an HTTP status and a JSON
// error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
