package cryptox

import (
	"crypto/sha256"
	"testing"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	passphrase := "correct-horse"

	key1 := DeriveKey(passphrase, VaultSalt)
	key2 := DeriveKey(passphrase, VaultSalt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)

	// snapshot against the reference KDF parameters
	expected := pbkdf2.Key([]byte(passphrase), []byte(VaultSalt), 100000, 32, sha256.New)
	assert.Equal(t, expected, key1)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	assert.NotEqual(t,
		DeriveKey("passphrase-1", VaultSalt),
		DeriveKey("passphrase-2", VaultSalt))

	assert.NotEqual(t,
		DeriveKey("passphrase", "salt-1"),
		DeriveKey("passphrase", "salt-2"))
}

func TestDeriveKey_EmptyPassphrase(t *testing.T) {
	// an empty passphrase is a policy question for the UI, not an error here
	key := DeriveKey("", VaultSalt)
	assert.Len(t, key, 32)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := DeriveKey("correct-horse", VaultSalt)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"short", []byte("hello vault")},
		{"empty", []byte{}},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80, 0x7f}},
		{"large", make([]byte, 1<<16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonce, ciphertext, err := Encrypt(tt.plaintext, key)
			require.NoError(t, err)
			assert.Len(t, nonce, common.NonceSize)
			// GCM appends a 16-byte tag
			assert.Len(t, ciphertext, len(tt.plaintext)+16)

			plaintext, err := Decrypt(ciphertext, nonce, key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	key1 := DeriveKey("passphrase-one", VaultSalt)
	key2 := DeriveKey("passphrase-two", VaultSalt)

	nonce, ciphertext, err := Encrypt([]byte("secret"), key1)
	require.NoError(t, err)

	plaintext, err := Decrypt(ciphertext, nonce, key2)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
	assert.Nil(t, plaintext)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	key := DeriveKey("correct-horse", VaultSalt)

	nonce, ciphertext, err := Encrypt([]byte("hello vault"), key)
	require.NoError(t, err)

	// flipping any single bit must fail authentication, never return
	// silently corrupted plaintext
	for i := range ciphertext {
		tampered := make([]byte, len(ciphertext))
		copy(tampered, ciphertext)
		tampered[i] ^= 0x01

		_, err := Decrypt(tampered, nonce, key)
		assert.ErrorIs(t, err, common.ErrDecryptionFailed, "bit flip at byte %d", i)
	}
}

func TestDecrypt_WrongNonce(t *testing.T) {
	key := DeriveKey("correct-horse", VaultSalt)

	nonce, ciphertext, err := Encrypt([]byte("hello vault"), key)
	require.NoError(t, err)

	wrong := make([]byte, len(nonce))
	copy(wrong, nonce)
	wrong[0] ^= 0x01

	_, err = Decrypt(ciphertext, wrong, key)
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestEncrypt_NonceUniqueness(t *testing.T) {
	key := DeriveKey("correct-horse", VaultSalt)
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		nonce, _, err := Encrypt([]byte("x"), key)
		require.NoError(t, err)
		_, dup := seen[string(nonce)]
		require.False(t, dup, "nonce reused after %d draws", i)
		seen[string(nonce)] = struct{}{}
	}
}

func TestSelfCheck(t *testing.T) {
	assert.NoError(t, SelfCheck())
}
