// Package folders stores folder records in the metadata database.
package folders

import (
	"context"

	"github.com/dmitrijs2005/cloudvault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, folder *models.Folder) error
	SelectAll(ctx context.Context) ([]*models.Folder, error)
}
