// Package models defines the core data structures for accounts and vault records.
package models

import "time"

// Account represents the subset of a user account visible to the vault
// subsystem. It is read-only here; account management lives elsewhere.
type Account struct {
	// ID is the unique identifier for the account.
	ID string
	// MasterKeyHash is the salted one-way hash of the account's master key.
	// It is never the primary login credential's hash and never leaves
	// the server.
	MasterKeyHash []byte
}

// VaultRecord holds one opaque encrypted secret owned by a single account.
// The server stores EncryptedPayload and IV verbatim and never attempts
// to interpret or decrypt them.
type VaultRecord struct {
	// ID is the unique identifier for the record, assigned at creation.
	ID string `json:"id"`
	// OwnerID is the identifier of the owning account. Immutable.
	OwnerID string `json:"ownerId"`
	// Title is the plaintext label of the record. Required, searchable.
	Title string `json:"title"`
	// EncryptedPayload is the opaque ciphertext blob, encrypted client-side.
	EncryptedPayload string `json:"encryptedPayload"`
	// IV is the per-record initialization vector paired with the payload.
	// Round-trips byte-exact.
	IV string `json:"iv"`
	// Tags are plaintext labels used for search. May be empty.
	Tags []string `json:"tags"`
	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the server-assigned timestamp of the last full replace.
	UpdatedAt time.Time `json:"updatedAt"`
}
