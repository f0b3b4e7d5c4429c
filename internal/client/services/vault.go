// Package services contains the client-side orchestration of the vault
// protocol: encrypt → capability → transfer → metadata for uploads, and
// the reverse for downloads.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/cryptox"
	"github.com/dmitrijs2005/cloudvault/internal/logging"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/google/uuid"
)

// MetadataStore is the durable table of folder and file records. The store
// only ever sees JSON-serializable records; never plaintext or keys.
type MetadataStore interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	CreateFolder(ctx context.Context, folder models.Folder) error
	CreateFile(ctx context.Context, record models.FileRecord) error
}

// CapabilityIssuer hands out short-lived presigned URLs for blob PUT/GET.
// Only the issuer holds long-lived storage credentials.
type CapabilityIssuer interface {
	IssueUploadCapability(ctx context.Context, blobID, contentType string) (string, error)
	IssueDownloadCapability(ctx context.Context, blobID string) (string, error)
}

// BlobTransfer moves raw ciphertext bytes over a capability URL.
type BlobTransfer interface {
	Put(ctx context.Context, url string, body []byte) error
	Get(ctx context.Context, url string) ([]byte, error)
}

// test seams
var (
	newBlobID = uuid.NewString
	timeNow   = time.Now
)

// FileAttrs describes the plaintext being uploaded. Size and Type refer to
// the original file, not the ciphertext.
type FileAttrs struct {
	FolderID string
	Name     string
	Size     int64
	Type     string
}

// BatchItem is one file in a batch upload.
type BatchItem struct {
	Plaintext []byte
	Attrs     FileAttrs
}

// VaultService drives file operations against the remote stores using the
// key held by the vault session. It owns no state of its own beyond its
// collaborators; each operation is self-contained.
type VaultService struct {
	session *cryptox.Session
	meta    MetadataStore
	issuer  CapabilityIssuer
	blobs   BlobTransfer
	logger  logging.Logger
}

// NewVaultService wires the orchestrator to its collaborators.
func NewVaultService(session *cryptox.Session, meta MetadataStore, issuer CapabilityIssuer, blobs BlobTransfer, logger logging.Logger) *VaultService {
	return &VaultService{session: session, meta: meta, issuer: issuer, blobs: blobs, logger: logger}
}

// Upload encrypts plaintext and drives it through the four-step upload
// sequence. The file exists only once the final metadata write succeeds:
//
//  1. Encrypt via the session → (nonce, ciphertext).
//  2. Request a PUT capability for a freshly generated blob id.
//  3. PUT the ciphertext to the capability URL. On failure nothing was
//     recorded, so a partially written blob is unreachable and never
//     surfaces as a file.
//  4. Write the FileRecord. Failure here leaves an orphaned ciphertext
//     blob with no record (ErrMetadataWriteFailed); there is no automatic
//     retry or rollback.
func (s *VaultService) Upload(ctx context.Context, plaintext []byte, attrs FileAttrs) (*models.FileRecord, error) {
	nonce, ciphertext, err := s.session.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting file: %w", err)
	}

	id := newBlobID()

	url, err := s.issuer.IssueUploadCapability(ctx, id, "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("%w: issuing upload capability: %v", common.ErrUploadTransferFailed, err)
	}

	if err := s.blobs.Put(ctx, url, ciphertext); err != nil {
		return nil, fmt.Errorf("uploading blob %s: %w", id, err)
	}

	record := models.FileRecord{
		ID:       id,
		FolderID: attrs.FolderID,
		Name:     attrs.Name,
		Size:     attrs.Size,
		Type:     attrs.Type,
		Created:  timeNow().UTC(),
		Nonce:    models.Nonce(nonce),
	}

	if err := s.meta.CreateFile(ctx, record); err != nil {
		// blob already stored remotely; without a record it is unreachable
		s.logger.Error(ctx, "metadata write failed after blob transfer, blob orphaned", "id", id)
		return nil, fmt.Errorf("%w: %v", common.ErrMetadataWriteFailed, err)
	}

	s.logger.Info(ctx, "file uploaded", "id", id, "size", attrs.Size)
	return &record, nil
}

// UploadBatch processes items strictly sequentially: item N's metadata
// write completes before item N+1's encryption begins. It stops at the
// first failure and returns the records of the fully committed prefix
// together with the error.
func (s *VaultService) UploadBatch(ctx context.Context, items []BatchItem) ([]*models.FileRecord, error) {
	committed := make([]*models.FileRecord, 0, len(items))
	for i, item := range items {
		record, err := s.Upload(ctx, item.Plaintext, item.Attrs)
		if err != nil {
			return committed, fmt.Errorf("uploading file %d of %d: %w", i+1, len(items), err)
		}
		committed = append(committed, record)
	}
	return committed, nil
}

// Download retrieves and decrypts one file:
//
//  1. Request a GET capability for the record's blob id.
//  2. Fetch the full ciphertext (ErrDownloadTransferFailed on failure).
//  3. Decrypt with the record's nonce. A tag mismatch surfaces as
//     ErrDecryptionFailed, distinct from transfer errors, so the caller
//     can tell "storage problem" apart from "wrong vault passphrase or
//     corrupted data".
func (s *VaultService) Download(ctx context.Context, record models.FileRecord) ([]byte, error) {
	url, err := s.issuer.IssueDownloadCapability(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing download capability: %v", common.ErrDownloadTransferFailed, err)
	}

	ciphertext, err := s.blobs.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading blob %s: %w", record.ID, err)
	}

	plaintext, err := s.session.Decrypt(ciphertext, record.Nonce)
	if err != nil {
		return nil, fmt.Errorf("decrypting blob %s: %w", record.ID, err)
	}

	return plaintext, nil
}

// CreateFolder creates a folder with a fresh opaque id and returns it.
func (s *VaultService) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	folder := models.Folder{ID: newBlobID(), Name: name}
	if err := s.meta.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	return &folder, nil
}

// ListFolders returns all folders. The reserved root folder is implicit
// and never part of the result.
func (s *VaultService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.meta.ListFolders(ctx)
}

// ListFiles returns the file records in the given folder, or all records
// when folderID is empty.
func (s *VaultService) ListFiles(ctx context.Context, folderID string) ([]models.FileRecord, error) {
	records, err := s.meta.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	if folderID == "" {
		return records, nil
	}
	filtered := make([]models.FileRecord, 0, len(records))
	for _, r := range records {
		if r.FolderID == folderID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
