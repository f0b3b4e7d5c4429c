package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cloudvault/internal/dbx"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/dmitrijs2005/cloudvault/internal/server/repositories/repomanager"
)

// MetadataService reads and writes folder and file records. It never sees
// plaintext: names, sizes and MIME types are client-supplied attributes of
// content the server cannot decrypt.
type MetadataService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewMetadataService constructs a MetadataService.
func NewMetadataService(db *sql.DB, repomanager repomanager.RepositoryManager) *MetadataService {
	return &MetadataService{db: db, repomanager: repomanager}
}

// Snapshot holds one consistent view of all folders and files.
type Snapshot struct {
	Folders []*models.Folder
	Files   []*models.FileRecord
}

// List returns folders and files read inside a single read-only
// transaction, so a concurrent upload cannot produce a view with a file
// whose folder is missing.
func (s *MetadataService) List(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if snap.Folders, err = s.repomanager.Folders(tx).SelectAll(ctx); err != nil {
			return err
		}
		if snap.Files, err = s.repomanager.Files(tx).SelectAll(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing metadata: %w", err)
	}

	return &snap, nil
}

// CreateFolder persists a new folder record.
func (s *MetadataService) CreateFolder(ctx context.Context, folder *models.Folder) error {
	if err := s.repomanager.Folders(s.db).Create(ctx, folder); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}
	return nil
}

// CreateFile persists a new file record. The caller has already
// transferred the ciphertext blob; this write is what makes the file
// exist.
func (s *MetadataService) CreateFile(ctx context.Context, record *models.FileRecord) error {
	if err := s.repomanager.Files(s.db).Create(ctx, record); err != nil {
		return fmt.Errorf("creating file record: %w", err)
	}
	return nil
}
