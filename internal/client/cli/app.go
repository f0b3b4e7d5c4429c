// Package cli implements the interactive CloudVault client: a small REPL
// that logs in to the server, unlocks the vault locally and moves files
// through the encrypt→upload and download→decrypt pipelines.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/client/api"
	"github.com/dmitrijs2005/cloudvault/internal/client/config"
	"github.com/dmitrijs2005/cloudvault/internal/client/services"
	"github.com/dmitrijs2005/cloudvault/internal/client/transfer"
	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/cryptox"
	"github.com/dmitrijs2005/cloudvault/internal/logging"
)

type App struct {
	config          *config.Config
	apiClient       *api.Client
	blobs           *transfer.Client
	logger          logging.Logger
	session         *cryptox.Session
	vault           *services.VaultService
	currentFolderID string
	reader          *bufio.Reader
}

// NewApp wires the client. It refuses to start without a working secure
// random source: a vault client that cannot generate nonces must not run.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := cryptox.SelfCheck(); err != nil {
		return nil, err
	}

	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	blobs := transfer.NewClient(c.RequestTimeout)

	// start with a locked session; Unlock swaps in a keyed one
	session := &cryptox.Session{}

	return &App{
		config:          c,
		apiClient:       apiClient,
		blobs:           blobs,
		logger:          logger,
		session:         session,
		vault:           services.NewVaultService(session, apiClient, apiClient, blobs, logger),
		currentFolderID: common.RootFolderID,
		reader:          bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.apiClient.LoggedIn()
}

func (a *App) isUnlocked() bool {
	return a.session != nil && a.session.Unlocked()
}

func (a *App) status() string {
	switch {
	case !a.isLoggedIn():
		return "logged out"
	case !a.isUnlocked():
		return fmt.Sprintf("locked:%s", a.currentFolderID)
	default:
		return fmt.Sprintf("unlocked:%s", a.currentFolderID)
	}
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	if a.session != nil {
		a.session.Lock()
	}
}

// withTimeout bounds one REPL command against a stuck server.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout+5*time.Second)
}
