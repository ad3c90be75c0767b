package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/server/models"
	"github.com/aleksivanovs/taskvault/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// setTokenHeaders attaches both credentials to the response. The body never
// carries the refresh token; header-only transport keeps it out of any logged
// or cached response payloads.
func setTokenHeaders(w http.ResponseWriter, pair *services.TokenPair) {
	w.Header().Set(headerAccessToken, pair.AccessToken)
	w.Header().Set(headerRefreshToken, pair.RefreshToken)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := s.users.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorEmailTaken):
			writeError(w, http.StatusBadRequest, "email already taken")
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "user signed up", "user_id", user.ID)

	setTokenHeaders(w, pair)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// unknown email and wrong password answer identically
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusBadRequest, "invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "user logged in", "user_id", user.ID)

	setTokenHeaders(w, pair)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleNewAccessToken(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	token, err := s.users.IssueAccessToken(user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "access token issue failed", "error", err.Error())
		writeError(w, http.StatusBadRequest, "could not issue access token")
		return
	}

	w.Header().Set(headerAccessToken, token)
	writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	token, okToken := refreshTokenFromContext(r.Context())
	if !ok || !okToken {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	if err := s.users.RevokeSession(r.Context(), user.ID, token); err != nil {
		s.logger.Error(r.Context(), "logout failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "session revoked", "user_id", user.ID)
	writeJSON(w, http.StatusOK, struct{}{})
}

// sessionUser pulls the authenticated user off the context; the AuthGate has
// always run first on these routes.
func sessionUser(r *http.Request) (*models.User, bool) {
	return userFromContext(r.Context())
}
