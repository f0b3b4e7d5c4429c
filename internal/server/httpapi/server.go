// Package httpapi exposes the server's HTTP surface: the auth gate, the
// metadata API and the capability-issuing storage API.
//
// Every data-bearing route sits behind the session cookie check. The
// server never handles plaintext or key material; an authenticated caller
// only ever moves opaque records and presigned URLs through it.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudvault/internal/logging"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/dmitrijs2005/cloudvault/internal/server/config"
	"github.com/dmitrijs2005/cloudvault/internal/server/services"
)

// MetadataService is the subset of the metadata service the API needs.
type MetadataService interface {
	List(ctx context.Context) (*services.Snapshot, error)
	CreateFolder(ctx context.Context, folder *models.Folder) error
	CreateFile(ctx context.Context, record *models.FileRecord) error
}

// StorageService issues capability URLs.
type StorageService interface {
	IssueUploadCapability(ctx context.Context, blobID, contentType string) (string, error)
	IssueDownloadCapability(ctx context.Context, blobID string) (string, error)
}

// Server is the HTTP API server.
type Server struct {
	addr            string
	logger          logging.Logger
	metadata        MetadataService
	storage         StorageService
	appPassword     string
	secretKey       []byte
	sessionValidity time.Duration
}

// NewServer builds the API server from config and services.
func NewServer(cfg *config.Config, logger logging.Logger, metadata MetadataService, storage StorageService) *Server {
	return &Server{
		addr:            cfg.EndpointAddr,
		logger:          logger,
		metadata:        metadata,
		storage:         storage,
		appPassword:     cfg.AppPassword,
		secretKey:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Handler returns the routed handler with the auth middleware applied to
// the data routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth", s.handleAuth)
	mux.Handle("/api/metadata", s.requireSession(http.HandlerFunc(s.handleMetadata)))
	mux.Handle("/api/storage", s.requireSession(http.HandlerFunc(s.handleStorage)))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
