// Package apperrors defines the error taxonomy shared across the vault
// subsystem. Callers match these sentinels with errors.Is.
package apperrors

import "errors"

var (
	// ErrUnauthorized indicates a missing or unresolved caller identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates a missing required field on create or update.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an absent record or account. A record owned by a
	// different caller is reported identically, so existence is never
	// confirmed to non-owners.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed caller input, such as an empty
	// presented master key.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates an underlying persistence failure.
	// It is reported upward, never retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
