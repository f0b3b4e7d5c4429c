// Package transfer moves ciphertext bytes to and from capability URLs.
//
// A capability URL is a short-lived presigned URL granting exactly one
// PUT or GET on one storage object; the client never holds storage
// credentials. The URL carries its own expiry enforced by the object
// store, so an expired transfer simply fails and the caller must request
// a fresh capability. No retries happen here.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
)

// Client performs raw blob transfers over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a transfer client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Put uploads ciphertext to a PUT capability URL. Any network error or
// non-2xx response maps to common.ErrUploadTransferFailed.
func (c *Client) Put(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUploadTransferFailed, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUploadTransferFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: %s", common.ErrUploadTransferFailed, resp.Status, string(b))
	}
	return nil
}

// Get downloads the full ciphertext from a GET capability URL. The whole
// body is read before returning: AEAD needs the complete tag before any
// plaintext can be trusted, so there is no streaming decrypt.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDownloadTransferFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDownloadTransferFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", common.ErrDownloadTransferFailed, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDownloadTransferFailed, err)
	}
	return body, nil
}
