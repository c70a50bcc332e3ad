package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/models"
)

// AccountRepository defines the account lookup needed by the MasterKeyGate.
type AccountRepository interface {
	// GetByID fetches the account with the given id, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// MasterKeyGate verifies a presented master key against an account's stored
// one-way verifier. It is stateless per call and mutates nothing; brute-force
// rate limiting is the calling layer's responsibility.
type MasterKeyGate struct {
	repo AccountRepository
}

// NewMasterKeyGate constructs a MasterKeyGate using the provided repository.
func NewMasterKeyGate(repo AccountRepository) *MasterKeyGate {
	return &MasterKeyGate{repo: repo}
}

// Verify compares the presented master key against the account's stored
// bcrypt verifier. It returns true only on an exact match; a wrong key is
// (false, nil), never an error. The stored hash is never exposed.
func (g *MasterKeyGate) Verify(ctx context.Context, accountID, presentedKey string) (bool, error) {
	if accountID == "" {
		return false, apperrors.ErrUnauthorized
	}
	if presentedKey == "" {
		return false, fmt.Errorf("%w: master key is required", apperrors.ErrInvalidInput)
	}

	account, err := g.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	err = bcrypt.CompareHashAndPassword(account.MasterKeyHash, []byte(presentedKey))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("compare master key: %w", err)
	}
	return true, nil
}
