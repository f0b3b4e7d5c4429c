// Package api implements the HTTP client for the CloudVault server. It
// satisfies the orchestrator's MetadataStore and CapabilityIssuer
// interfaces and carries the session cookie obtained from the auth gate.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/models"
)

// Client talks to the CloudVault API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *http.Cookie
}

// NewClient returns an unauthenticated API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body *bytes.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.AddCookie(c.session)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s %s: unexpected status %s", method, path, resp.Status)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	// keep the freshest session cookie if the server rotated it
	for _, cookie := range resp.Cookies() {
		if cookie.Name == common.SessionCookieName {
			c.session = cookie
		}
	}

	return nil
}

// Login authenticates against the app-password gate and stores the session
// cookie for subsequent calls. The vault passphrase is never sent here or
// anywhere else.
func (c *Client) Login(ctx context.Context, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth", map[string]string{"password": password}, nil)
}

// LoggedIn reports whether a session cookie is held.
func (c *Client) LoggedIn() bool {
	return c.session != nil
}

type metadataResponse struct {
	Folders []models.Folder     `json:"folders"`
	Files   []models.FileRecord `json:"files"`
}

type metadataRequest struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ListFolders fetches all folder records.
func (c *Client) ListFolders(ctx context.Context) ([]models.Folder, error) {
	var resp metadataResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/metadata", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// ListFiles fetches all file records.
func (c *Client) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var resp metadataResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/metadata", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// CreateFolder persists a folder record.
func (c *Client) CreateFolder(ctx context.Context, folder models.Folder) error {
	return c.doJSON(ctx, http.MethodPost, "/api/metadata", metadataRequest{Type: "create_folder", Data: folder}, nil)
}

// CreateFile persists a file record.
func (c *Client) CreateFile(ctx context.Context, record models.FileRecord) error {
	return c.doJSON(ctx, http.MethodPost, "/api/metadata", metadataRequest{Type: "add_file", Data: record}, nil)
}

type storageRequest struct {
	Filename  string `json:"filename"`
	FileType  string `json:"fileType,omitempty"`
	Operation string `json:"operation"`
}

type storageResponse struct {
	URL string `json:"url"`
}

// IssueUploadCapability requests a presigned PUT URL for the blob id.
func (c *Client) IssueUploadCapability(ctx context.Context, blobID, contentType string) (string, error) {
	var resp storageResponse
	req := storageRequest{Filename: blobID, FileType: contentType, Operation: "upload"}
	if err := c.doJSON(ctx, http.MethodPost, "/api/storage", req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// IssueDownloadCapability requests a presigned GET URL for the blob id.
func (c *Client) IssueDownloadCapability(ctx context.Context, blobID string) (string, error) {
	var resp storageResponse
	req := storageRequest{Filename: blobID, Operation: "download"}
	if err := c.doJSON(ctx, http.MethodPost, "/api/storage", req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
