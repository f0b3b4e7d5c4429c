package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/cloudvault/internal/client/services"
	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/cryptox"
)

// Login authenticates against the server's app-password gate. This only
// opens the session; the vault stays locked until Unlock.
func (a *App) Login(ctx context.Context) error {
	password, err := GetPassword("App password:", os.Stdout)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.apiClient.Login(ctx, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Incorrect app password")
		} else {
			printlnFn("Login error:", err)
		}
		return err
	}

	printlnFn("Logged in.")
	return nil
}

// Unlock derives the vault key from the passphrase and builds the vault
// service around it. There is no verifier: a wrong passphrase is accepted
// here and only surfaces later as a decryption failure on download.
func (a *App) Unlock(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	passphrase, err := GetPassword("Vault passphrase:", os.Stdout)
	if err != nil {
		return err
	}
	if passphrase == "" {
		printlnFn("Passphrase must not be empty")
		return errors.New("empty passphrase")
	}

	a.session = cryptox.NewSession(passphrase)
	a.vault = services.NewVaultService(a.session, a.apiClient, a.apiClient, a.blobs, a.logger)

	printlnFn("Vault unlocked.")
	return nil
}

// LockVault wipes the key. Metadata operations keep working; encrypt and
// decrypt fail until the next Unlock.
func (a *App) LockVault(ctx context.Context) error {
	a.session.Lock()
	printlnFn("Vault locked.")
	return nil
}
