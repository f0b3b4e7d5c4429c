package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/dmitrijs2005/cloudvault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	nonce := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name FROM folders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("f1", "documents"))
	mock.ExpectQuery("SELECT id, folder_id, name, size, type, created, nonce FROM files").
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_id", "name", "size", "type", "created", "nonce"}).
			AddRow("blob-1", "f1", "hello.txt", 11, "text/plain", created, nonce))
	mock.ExpectCommit()

	svc := NewMetadataService(db, repomanager.NewPostgresRepositoryManager())
	snap, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Folders, 1)
	assert.Equal(t, "documents", snap.Folders[0].Name)
	require.Len(t, snap.Files, 1)
	assert.Equal(t, models.Nonce(nonce), snap.Files[0].Nonce)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_QueryErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name FROM folders").WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	svc := NewMetadataService(db, repomanager.NewPostgresRepositoryManager())
	_, err = svc.List(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFolder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO folders").
		WithArgs("f1", "documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewMetadataService(db, repomanager.NewPostgresRepositoryManager())
	err = svc.CreateFolder(context.Background(), &models.Folder{ID: "f1", Name: "documents"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &models.FileRecord{
		ID:       "blob-1",
		FolderID: "root",
		Name:     "hello.txt",
		Size:     11,
		Type:     "text/plain",
		Created:  time.Now().UTC(),
		Nonce:    models.Nonce{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	}

	mock.ExpectExec("INSERT INTO files").
		WithArgs(rec.ID, rec.FolderID, rec.Name, rec.Size, rec.Type, rec.Created, []byte(rec.Nonce)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewMetadataService(db, repomanager.NewPostgresRepositoryManager())
	require.NoError(t, svc.CreateFile(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}
