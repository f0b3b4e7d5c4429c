package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/models"
	"github.com/dmitrijs2005/cloudvault/internal/server/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits a generic JSON error body. Messages are deliberately
// uninformative so a failed guess leaks nothing about why it failed.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type authRequest struct {
	Password string `json:"password"`
}

// handleAuth checks the app password and, on success, sets the session
// cookie. This gate is unrelated to the vault passphrase, which never
// reaches the server.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.appPassword)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := auth.GenerateSessionToken(s.secretKey, s.sessionValidity)
	if err != nil {
		s.logger.Error(r.Context(), "generating session token", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type metadataResponse struct {
	Folders []*models.Folder     `json:"folders"`
	Files   []*models.FileRecord `json:"files"`
}

type metadataRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// handleMetadata serves the folder/file table. GET returns everything;
// POST creates a folder or a file record depending on the request type.
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snap, err := s.metadata.List(r.Context())
		if err != nil {
			s.logger.Error(r.Context(), "listing metadata", "error", err)
			writeError(w, http.StatusInternalServerError, "Database operation failed")
			return
		}
		resp := metadataResponse{Folders: snap.Folders, Files: snap.Files}
		if resp.Folders == nil {
			resp.Folders = []*models.Folder{}
		}
		if resp.Files == nil {
			resp.Files = []*models.FileRecord{}
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodPost:
		var req metadataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		switch req.Type {
		case "create_folder":
			var folder models.Folder
			if err := json.Unmarshal(req.Data, &folder); err != nil || folder.ID == "" {
				writeError(w, http.StatusBadRequest, "Invalid request")
				return
			}
			if err := s.metadata.CreateFolder(r.Context(), &folder); err != nil {
				s.writeStoreError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})

		case "add_file":
			var record models.FileRecord
			if err := json.Unmarshal(req.Data, &record); err != nil || record.ID == "" {
				writeError(w, http.StatusBadRequest, "Invalid request")
				return
			}
			if err := s.metadata.CreateFile(r.Context(), &record); err != nil {
				s.writeStoreError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})

		default:
			writeError(w, http.StatusBadRequest, "Invalid operation")
		}

	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "Already exists")
		return
	}
	s.logger.Error(r.Context(), "metadata write", "error", err)
	writeError(w, http.StatusInternalServerError, "Database operation failed")
}

type storageRequest struct {
	Filename  string `json:"filename"`
	FileType  string `json:"fileType"`
	Operation string `json:"operation"`
}

// handleStorage issues a presigned URL for one upload or download. The
// response URL is the only storage access the client ever gets.
func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req storageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	var url string
	var err error
	switch req.Operation {
	case "upload":
		contentType := req.FileType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		url, err = s.storage.IssueUploadCapability(r.Context(), req.Filename, contentType)
	case "download":
		url, err = s.storage.IssueDownloadCapability(r.Context(), req.Filename)
	default:
		writeError(w, http.StatusBadRequest, "Invalid operation")
		return
	}

	if err != nil {
		s.logger.Error(r.Context(), "issuing capability", "operation", req.Operation, "error", err)
		writeError(w, http.StatusInternalServerError, "Storage Access Failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
