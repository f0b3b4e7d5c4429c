// Package cryptox implements the vault's client-side cryptography: PBKDF2
// key derivation from the user's passphrase and AES-256-GCM encryption of
// file contents.
//
// The nonce is generated fresh per encryption and returned separately from
// the ciphertext, so the stored blob stays pure ciphertext and the nonce
// lives in structured metadata instead.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// VaultSalt is the fixed, non-secret salt shared by all vault data.
// Keeping it constant means the same passphrase derives the same key on any
// installation and the server stores nothing; the trade-off against
// precomputation is accepted as long as the iteration count stays high.
const VaultSalt = "static-salt-production"

// Iterations is the PBKDF2 round count. Deliberately slow.
const Iterations = 100000

const keySize = 32

// DeriveKey derives a 256-bit AES key from a passphrase and salt using
// PBKDF2-HMAC-SHA256. Deterministic: the same inputs always produce the
// same key, which is what lets the user regain access across sessions by
// re-entering the passphrase.
//
// An empty passphrase still derives a key; rejecting empty input is the
// caller's policy, not this function's.
func DeriveKey(passphrase string, salt string) []byte {
	return pbkdf2.Key([]byte(passphrase), []byte(salt), Iterations, keySize, sha256.New)
}

// SelfCheck probes the secure random source. It must be called once at
// startup: without working entropy no nonce may ever be generated, and
// degrading silently to a weak source would be catastrophic for GCM.
func SelfCheck() error {
	buf := make([]byte, common.NonceSize)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("%w: %v", common.ErrEntropyUnavailable, err)
	}
	return nil
}

// Encrypt encrypts plaintext under key with AES-256-GCM.
//
// A new random 12-byte nonce is generated for every call and returned
// alongside the ciphertext; it is never derived from content or reused.
// The authentication tag is appended to the ciphertext per AEAD convention.
func Encrypt(plaintext, key []byte) (nonce, ciphertext []byte, err error) {
	nonce = make([]byte, common.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrEntropyUnavailable, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return nonce, ciphertext, nil
}

// Decrypt reverses Encrypt given the same key and nonce. It returns
// common.ErrDecryptionFailed when the tag does not verify (wrong key, wrong
// nonce, or corrupted/tampered ciphertext) and never returns partial or
// unauthenticated plaintext.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
