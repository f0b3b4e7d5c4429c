package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cloudvault/internal/common"
)

// MkDir creates a folder in the flat namespace.
func (a *App) MkDir(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	name, err := GetSimpleText(a.reader, "Folder name:", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		printlnFn("Folder name must not be empty")
		return nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	folder, err := a.vault.CreateFolder(ctx, name)
	if err != nil {
		printlnFn("Error creating folder:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Created folder %s (%s)", folder.Name, folder.ID))
	return nil
}

// ChangeFolder switches the current folder for list/put.
func (a *App) ChangeFolder(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	id, err := GetSimpleText(a.reader, "Folder id (empty for root):", os.Stdout)
	if err != nil {
		return err
	}
	if id == "" {
		id = common.RootFolderID
	}
	a.currentFolderID = id
	return nil
}

// List prints all folders and the files of the current folder.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	folders, err := a.vault.ListFolders(ctx)
	if err != nil {
		printlnFn("Error listing folders:", err)
		return err
	}
	files, err := a.vault.ListFiles(ctx, a.currentFolderID)
	if err != nil {
		printlnFn("Error listing files:", err)
		return err
	}

	printlnFn("Folders:")
	printlnFn(fmt.Sprintf("  %-36s  %s", common.RootFolderID, "(root)"))
	for _, f := range folders {
		printlnFn(fmt.Sprintf("  %-36s  %s", f.ID, f.Name))
	}

	printlnFn(fmt.Sprintf("Files in %s:", a.currentFolderID))
	for _, f := range files {
		printlnFn(fmt.Sprintf("  %-36s  %10d  %-24s  %s", f.ID, f.Size, f.Type, f.Name))
	}
	return nil
}
