// Package common defines shared constants and sentinel errors used across
// client and server layers of CloudVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")

	// Crypto errors. ErrEntropyUnavailable is fatal at startup: without a
	// secure random source no nonce may ever be generated.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")
	ErrDecryptionFailed   = errors.New("decryption failed")
	ErrVaultLocked        = errors.New("vault is locked")

	// Orchestration errors. Transfer errors are transient and retryable by
	// the caller; ErrMetadataWriteFailed after a successful transfer leaves
	// an orphaned blob (documented inconsistency, not auto-reconciled).
	ErrUploadTransferFailed   = errors.New("upload transfer failed")
	ErrDownloadTransferFailed = errors.New("download transfer failed")
	ErrMetadataWriteFailed    = errors.New("metadata write failed")
)
