// Package http provides HTTP handlers for the vault API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/middleware"
	"github.com/anikeev/vaultkeep/internal/models"
)

// VaultService defines the interface for vault operations required by the
// VaultHandler.
type VaultService interface {
	// List returns all of the owner's records, newest first.
	List(ctx context.Context, ownerID string) ([]models.VaultRecord, error)
	// Create stores a new record for the owner.
	Create(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	// Update replaces the mutable fields of the owner's record.
	Update(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	// Delete permanently removes the owner's record.
	Delete(ctx context.Context, ownerID, id string) error
	// Search returns the owner's records matching the query by title or tag.
	Search(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error)
}

// VaultHandler handles HTTP requests for vault records.
type VaultHandler struct {
	// VaultService performs the underlying vault operations.
	VaultService VaultService
}

// VaultRecordRequest represents the JSON payload for creating or updating
// a vault record. Omitting tags on update resets them to empty; updates
// replace all four fields as a unit.
type VaultRecordRequest struct {
	// Title is the plaintext label of the record.
	Title string `json:"title"`
	// EncryptedPayload is the ciphertext blob, produced client-side.
	EncryptedPayload string `json:"encryptedPayload"`
	// IV is the initialization vector paired with the payload.
	IV string `json:"iv"`
	// Tags are optional plaintext labels.
	Tags []string `json:"tags"`
}

// List handles GET /api/vault requests, returning the caller's records
// newest first.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	records, err := h.VaultService.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Search handles GET /api/vault/search?q= requests. A blank query returns
// the full list.
func (h *VaultHandler) Search(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())
	query := r.URL.Query().Get("q")

	records, err := h.VaultService.Search(r.Context(), ownerID, query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Create handles POST /api/vault requests. It expects a JSON body with
// title, encryptedPayload, iv and optional tags, and returns the stored
// record with its assigned id and timestamps.
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req VaultRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed json body", apperrors.ErrInvalidInput))
		return
	}

	record, err := h.VaultService.Create(r.Context(), ownerID, req.Title, req.EncryptedPayload, req.IV, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Update handles PUT /api/vault/{id} requests, replacing the record's
// mutable fields as a unit.
func (h *VaultHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req VaultRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed json body", apperrors.ErrInvalidInput))
		return
	}

	record, err := h.VaultService.Update(r.Context(), ownerID, id, req.Title, req.EncryptedPayload, req.IV, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/vault/{id} requests. Removal is permanent.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.VaultService.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
