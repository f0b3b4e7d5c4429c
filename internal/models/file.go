package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
)

// Nonce is the 12-byte AES-GCM nonce stored with each file record.
//
// On the metadata wire it is serialized as a JSON array of integers (0–255)
// rather than base64, because the store has no native byte-array type and
// the record format predates this implementation. It is converted back to
// raw bytes on read.
type Nonce []byte

func (n Nonce) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(n))
	for i, b := range n {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

func (n *Nonce) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	if len(ints) != common.NonceSize {
		return fmt.Errorf("invalid nonce length: %d", len(ints))
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("invalid nonce byte at %d: %d", i, v)
		}
		out[i] = byte(v)
	}
	*n = out
	return nil
}

// FileRecord is the durable metadata for one encrypted blob. ID doubles as
// the object-storage key. Size, Name and Type describe the plaintext; the
// blob itself is pure ciphertext.
//
// The record is the only link between a ciphertext blob and the nonce
// needed to decrypt it. Losing the record permanently loses the file.
type FileRecord struct {
	ID       string    `json:"id"`
	FolderID string    `json:"folderId"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Type     string    `json:"type"`
	Created  time.Time `json:"created"`
	Nonce    Nonce     `json:"nonce"`
}
