package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/middleware"
)

// MasterKeyVerifier defines the interface for master key verification
// required by the MasterKeyHandler.
type MasterKeyVerifier interface {
	// Verify reports whether the presented key matches the account's
	// stored verifier. A wrong key is (false, nil), not an error.
	Verify(ctx context.Context, accountID, presentedKey string) (bool, error)
}

// MasterKeyHandler handles HTTP requests for master key verification.
type MasterKeyHandler struct {
	// Gate performs the underlying verification.
	Gate MasterKeyVerifier
}

// VerifyMasterKeyRequest represents the JSON payload for verification.
type VerifyMasterKeyRequest struct {
	// MasterKey is the key presented by the caller for re-authorization.
	MasterKey string `json:"masterKey"`
}

// Verify handles POST /api/vault/master-key/verify requests.
// It responds with {"valid": true} only on an exact match; the stored
// verifier never appears in any response.
func (h *MasterKeyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetUserIDFromContext(r.Context())

	var req VerifyMasterKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed json body", apperrors.ErrInvalidInput))
		return
	}

	valid, err := h.Gate.Verify(r.Context(), accountID, req.MasterKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
