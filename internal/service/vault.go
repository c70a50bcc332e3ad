// Package service provides business logic for vault record custody and
// master key verification, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/models"
)

// VaultRepository defines the persistence operations needed by the VaultService.
type VaultRepository interface {
	// ListByOwner retrieves all records belonging to the owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.VaultRecord, error)
	// Create validates and persists a new record for the owner.
	Create(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	// Update replaces the mutable fields of the record matching (id, ownerID).
	Update(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error)
	// Delete permanently removes the record matching (id, ownerID).
	Delete(ctx context.Context, ownerID, id string) error
	// Search returns the owner's records matching the query by title or tag.
	Search(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error)
}

// VaultService binds the resolved caller identity to every store operation,
// so no record can be read or written outside its owner's scope. It carries
// no business logic beyond that binding and error translation.
type VaultService struct {
	// repo performs the data-layer operations.
	repo VaultRepository
}

// NewVaultService constructs a VaultService using the provided repository.
func NewVaultService(repo VaultRepository) *VaultService {
	return &VaultService{repo: repo}
}

// requireOwner rejects calls that reach the service without a resolved
// caller identity, before any store access.
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// translate maps unrecognized repository failures to ErrStorageUnavailable
// while passing taxonomy sentinels through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
}

// List returns all of the caller's vault records, newest first.
func (s *VaultService) List(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByOwner(ctx, ownerID)
	return records, translate(err)
}

// Create stores a new vault record for the caller.
func (s *VaultService) Create(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	record, err := s.repo.Create(ctx, ownerID, title, encryptedPayload, iv, tags)
	return record, translate(err)
}

// Update replaces the mutable fields of the caller's record as a unit.
// Tags omitted by the caller reset to empty; an update is a full replace,
// never a partial patch.
func (s *VaultService) Update(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	record, err := s.repo.Update(ctx, ownerID, id, title, encryptedPayload, iv, tags)
	return record, translate(err)
}

// Delete permanently removes the caller's record.
func (s *VaultService) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, ownerID, id))
}

// Search returns the caller's records whose title or tags contain the query,
// case-insensitively. A blank query is equivalent to List.
func (s *VaultService) Search(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	records, err := s.repo.Search(ctx, ownerID, query)
	return records, translate(err)
}
