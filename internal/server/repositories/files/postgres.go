package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/dbx"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements file-record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file record. Records are created exactly once, after a
// successful blob transfer, and never mutated. A duplicate id returns
// ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, record *models.FileRecord) error {
	query := `
		INSERT INTO files (id, folder_id, name, size, type, created, nonce)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.FolderID, record.Name, record.Size, record.Type, record.Created, []byte(record.Nonce))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectAll returns every file record ordered by creation time.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.FileRecord, error) {
	query := `SELECT id, folder_id, name, size, type, created, nonce FROM files ORDER BY created`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		var item models.FileRecord
		var nonce []byte
		if err := rows.Scan(&item.ID, &item.FolderID, &item.Name, &item.Size, &item.Type, &item.Created, &nonce); err != nil {
			return nil, err
		}
		item.Nonce = models.Nonce(nonce)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single file record or ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	query := `SELECT id, folder_id, name, size, type, created, nonce FROM files WHERE id=$1`

	result := &models.FileRecord{}
	var nonce []byte
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&result.ID, &result.FolderID, &result.Name, &result.Size, &result.Type, &result.Created, &nonce)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	result.Nonce = models.Nonce(nonce)
	return result, nil
}
