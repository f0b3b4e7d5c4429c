package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cloudvault/internal/common"
	"github.com/dmitrijs2005/cloudvault/internal/server/auth"
)

// requireSession rejects requests without a valid session cookie before
// any core logic runs. The 401 is a distinct outer layer: core errors
// never masquerade as authorization failures and vice versa.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(common.SessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err := auth.ValidateSessionToken(cookie.Value, s.secretKey); err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
