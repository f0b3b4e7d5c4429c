package cryptox

import (
	"sync"

	"github.com/dmitrijs2005/cloudvault/internal/common"
)

// Session holds the derived vault key for the lifetime of an unlocked
// vault. It is the only component that ever sees the passphrase or key;
// the key is never persisted or transmitted.
//
// There is no stored verifier, so unlocking always succeeds nominally. A
// wrong passphrase is only observable later, when Decrypt fails
// authentication on an existing file. The server never learns whether a
// guess was right.
// The zero value is a locked session: every operation returns
// common.ErrVaultLocked until a key is derived via NewSession.
type Session struct {
	mu  sync.RWMutex
	key []byte
}

// NewSession derives the vault key from the passphrase (an expensive PBKDF
// run) and caches it so subsequent file operations do not re-derive it.
func NewSession(passphrase string) *Session {
	return &Session{key: DeriveKey(passphrase, VaultSalt)}
}

// Encrypt encrypts plaintext with the cached key. Returns
// common.ErrVaultLocked after Lock.
func (s *Session) Encrypt(plaintext []byte) (nonce, ciphertext []byte, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return nil, nil, common.ErrVaultLocked
	}
	return Encrypt(plaintext, s.key)
}

// Decrypt decrypts ciphertext with the cached key and the given nonce.
func (s *Session) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return nil, common.ErrVaultLocked
	}
	return Decrypt(ciphertext, nonce, s.key)
}

// Lock wipes the key from memory. In-flight Encrypt/Decrypt calls hold the
// read lock for their whole run, so they either finish with the intact key
// or start after the wipe and fail with ErrVaultLocked; a half-cleared key
// is never observable.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	common.WipeByteArray(s.key)
	s.key = nil
}

// Unlocked reports whether the session still holds a key.
func (s *Session) Unlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}
