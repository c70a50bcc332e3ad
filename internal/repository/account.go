package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/models"
)

// PostgresAccountRepository reads account data needed by the master key gate.
// Accounts are managed by the user service; this subsystem only looks up the
// stored verifier hash.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository with
// the given database connection.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// GetByID fetches the account with the given id. Returns
// apperrors.ErrNotFound if no such account exists.
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, master_key_hash FROM accounts WHERE id = $1
	`, id).Scan(&account.ID, &account.MasterKeyHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &account, nil
}
