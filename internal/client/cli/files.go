package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/cloudvault/internal/client/services"
	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/filex"
)

// Put encrypts and uploads one or more local files into the current
// folder. Several paths can be given on one line; they are uploaded one
// after another, and the command stops at the first failure.
func (a *App) Put(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}
	if !a.isUnlocked() {
		printlnFn("Unlock the vault first")
		return common.ErrVaultLocked
	}

	line, err := GetSimpleText(a.reader, "File path(s):", os.Stdout)
	if err != nil {
		return err
	}
	paths := strings.Fields(line)
	if len(paths) == 0 {
		printlnFn("No files given")
		return nil
	}

	items := make([]services.BatchItem, 0, len(paths))
	for _, path := range paths {
		data, name, mimeType, err := filex.ReadForUpload(path)
		if err != nil {
			printlnFn("Error reading file:", err)
			return err
		}
		items = append(items, services.BatchItem{
			Plaintext: data,
			Attrs: services.FileAttrs{
				FolderID: a.currentFolderID,
				Name:     name,
				Size:     int64(len(data)),
				Type:     mimeType,
			},
		})
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	records, err := a.vault.UploadBatch(ctx, items)
	for _, r := range records {
		printlnFn(fmt.Sprintf("Uploaded %s (%s)", r.Name, r.ID))
	}
	if err != nil {
		printlnFn("Upload error:", err)
		return err
	}
	return nil
}

// Get downloads and decrypts one file by id.
func (a *App) Get(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}
	if !a.isUnlocked() {
		printlnFn("Unlock the vault first")
		return common.ErrVaultLocked
	}

	id, err := GetSimpleText(a.reader, "File id:", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	records, err := a.vault.ListFiles(ctx, "")
	if err != nil {
		printlnFn("Error listing files:", err)
		return err
	}
	idx := -1
	for i, r := range records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		printlnFn("No file with id", id)
		return common.ErrNotFound
	}
	record := records[idx]

	path, err := GetSimpleText(a.reader, fmt.Sprintf("Save as (empty for %s):", record.Name), os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		path = record.Name
	}

	plaintext, err := a.vault.Download(ctx, record)
	if err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			printlnFn("Decryption failed. Wrong vault password?")
		} else {
			printlnFn("Download error:", err)
		}
		return err
	}

	if err := filex.WriteDownloaded(path, plaintext); err != nil {
		printlnFn("Error saving file:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Saved %s (%d bytes)", path, len(plaintext)))
	return nil
}
