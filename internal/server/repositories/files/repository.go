// Package files stores file records in the metadata database. A row is
// the only durable link between a ciphertext blob and the nonce needed to
// decrypt it.
package files

import (
	"context"

	"github.com/dmitrijs2005/cloudvault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.FileRecord) error
	SelectAll(ctx context.Context) ([]*models.FileRecord, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
}
