// Package filex contains small filesystem helpers for the CLI client.
package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ReadForUpload reads a local file and returns its contents together with
// the base name and a sniffed MIME type. The MIME type describes the
// plaintext; the uploaded blob itself is always opaque ciphertext.
func ReadForUpload(path string) (data []byte, name, mimeType string, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, filepath.Base(path), http.DetectContentType(data), nil
}

// WriteDownloaded writes decrypted plaintext to path with owner-only
// permissions.
func WriteDownloaded(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
