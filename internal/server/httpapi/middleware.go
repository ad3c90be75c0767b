package httpapi

import (
	"errors"
	"net/http"

	"github.com/aleksivanovs/taskvault/internal/common"
)

// Custom headers carrying credentials between client and server.
const (
	headerRefreshToken = "x-refresh-token"
	headerAccessToken  = "x-access-token"
	headerUserID       = "id"
)

// authenticate guards protected routes. It reads the identity and refresh
// token headers and re-validates the session against storage on every request;
// nothing is cached. Rejections carry a reason that distinguishes a token that
// was never issued from one that has expired, but both are 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerUserID)
		token := r.Header.Get(headerRefreshToken)

		if userID == "" || token == "" {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}

		user, err := s.users.VerifySession(r.Context(), userID, token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorNotFound):
				writeError(w, http.StatusUnauthorized, "user not found")
			case errors.Is(err, common.ErrSessionExpired):
				writeError(w, http.StatusUnauthorized, "session expired or invalid")
			default:
				s.logger.Error(r.Context(), "session verification failed", "error", err.Error())
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), user, token)))
	})
}

// cors emits the CORS headers the browser client needs, including the exposed
// token headers, and short-circuits preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.corsOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, HEAD, OPTIONS, PUT, PATCH, DELETE")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+headerUserID+", "+headerRefreshToken+", "+headerAccessToken)
		h.Set("Access-Control-Expose-Headers", headerRefreshToken+", "+headerAccessToken)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
