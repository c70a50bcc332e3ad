// Package repository provides persistence implementations for vault records
// and accounts using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anikeev/vaultkeep/internal/apperrors"
	"github.com/anikeev/vaultkeep/internal/models"
)

// PostgresVaultRepository implements vault record operations against a
// PostgreSQL database. Every query is scoped by owner id; a record whose
// owner does not match the caller is indistinguishable from an absent one.
type PostgresVaultRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresVaultRepository creates a new PostgresVaultRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresVaultRepository(db *sql.DB) *PostgresVaultRepository {
	return &PostgresVaultRepository{DB: db}
}

const recordColumns = `id, owner_id, title, encrypted_payload, iv, tags, created_at, updated_at`

// validateRecordFields checks the required mutable fields shared by create
// and update. Tags may be empty.
func validateRecordFields(title, encryptedPayload, iv string) error {
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	case encryptedPayload == "":
		return fmt.Errorf("%w: encryptedPayload is required", apperrors.ErrValidation)
	case iv == "":
		return fmt.Errorf("%w: iv is required", apperrors.ErrValidation)
	}
	return nil
}

// ListByOwner fetches all vault records belonging to the given owner,
// newest first.
func (r *PostgresVaultRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.VaultRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM vault_records
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Create validates and persists a new vault record for the owner, assigning
// its id and timestamps. The payload and IV are stored verbatim.
func (r *PostgresVaultRepository) Create(ctx context.Context, ownerID, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	if err := validateRecordFields(title, encryptedPayload, iv); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	record := &models.VaultRecord{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Title:            title,
		EncryptedPayload: encryptedPayload,
		IV:               iv,
		Tags:             tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vault_records (id, owner_id, title, encrypted_payload, iv, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, record.ID, record.OwnerID, record.Title, record.EncryptedPayload, record.IV,
		pq.Array(record.Tags), record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return record, nil
}

// Update replaces the four mutable fields of the record identified by
// (id, ownerID) as a unit and bumps updated_at. The lookup and the write are
// a single conditional UPDATE, so a record deleted concurrently surfaces as
// not found rather than a lost write. Returns apperrors.ErrNotFound when no
// record matches, including records owned by someone else.
func (r *PostgresVaultRepository) Update(ctx context.Context, ownerID, id, title, encryptedPayload, iv string, tags []string) (*models.VaultRecord, error) {
	if err := validateRecordFields(title, encryptedPayload, iv); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	record := &models.VaultRecord{
		ID:               id,
		OwnerID:          ownerID,
		Title:            title,
		EncryptedPayload: encryptedPayload,
		IV:               iv,
		Tags:             tags,
		UpdatedAt:        time.Now().UTC(),
	}

	err := r.DB.QueryRowContext(ctx, `
		UPDATE vault_records
		SET title = $3, encrypted_payload = $4, iv = $5, tags = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2
		RETURNING created_at
	`, id, ownerID, title, encryptedPayload, iv, pq.Array(tags), record.UpdatedAt).
		Scan(&record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return record, nil
}

// Delete permanently removes the record identified by (id, ownerID).
// Returns apperrors.ErrNotFound when no record matches.
func (r *PostgresVaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM vault_records WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Search returns the owner's records whose title or any tag contains the
// query as a case-insensitive substring, newest first. A blank query behaves
// exactly like ListByOwner. The encrypted payload is never matched against.
func (r *PostgresVaultRepository) Search(ctx context.Context, ownerID, query string) ([]models.VaultRecord, error) {
	if strings.TrimSpace(query) == "" {
		return r.ListByOwner(ctx, ownerID)
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM vault_records
		WHERE owner_id = $1
		  AND (title ILIKE $2 ESCAPE '\'
		       OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2 ESCAPE '\'))
		ORDER BY created_at DESC
	`, ownerID, pattern)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// escapeLike neutralizes LIKE wildcards so the query matches as a literal
// substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanRecords(rows *sql.Rows) ([]models.VaultRecord, error) {
	records := []models.VaultRecord{}
	for rows.Next() {
		var rec models.VaultRecord
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.EncryptedPayload,
			&rec.IV, pq.Array(&rec.Tags), &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}
