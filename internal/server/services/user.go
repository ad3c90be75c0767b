// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and the session lifecycle:
// opaque refresh sessions stored per user plus stateless signed access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/dbx"
	"github.com/aleksivanovs/taskvault/internal/server/auth"
	"github.com/aleksivanovs/taskvault/internal/server/config"
	"github.com/aleksivanovs/taskvault/internal/server/models"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost matches the work factor the account hashes were created with.
	bcryptCost = 10

	// refreshTokenBytes of entropy per refresh token; hex-encoding doubles the
	// length, so issued tokens are 128 characters.
	refreshTokenBytes = 64

	minPasswordLength = 8
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - SignUp: create users and open their first session
//   - Login: verify credentials and mint tokens
//   - VerifySession: the per-request session check behind protected routes
//   - CreateSession / RevokeSession: refresh session lifecycle
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp validates the credentials, stores the user with a hashed password,
// and opens the first session. The password is hashed exactly once, here,
// before anything is persisted. User and session are created in one
// transaction so a half-created account can never exist.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}

	var refresh string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		refresh, err = s.createSession(ctx, tx, user.ID)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, nil, common.ErrorEmailTaken
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	// Access token is signed only after the session is durably stored.
	access, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Login verifies the credentials and, on success, appends a fresh session and
// returns a new TokenPair. Every login gets its own session row, so multiple
// devices stay logged in concurrently.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.generateTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// FindByCredentials resolves a user by email and verifies the password.
// An unknown email and a wrong password both return ErrorUnauthorized; the
// caller cannot tell which one failed.
func (s *UserService) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// VerifySession is the request-time gate. The check is two-step:
//  1. resolve the user by (id, token), expiry ignored; a miss means the
//     token was never issued to that user (ErrorNotFound);
//  2. scan the user's sessions for a matching, unexpired entry; a miss here
//     means the session existed but is no longer valid (ErrSessionExpired).
//
// No caching: session state is re-read on every call.
func (s *UserService) VerifySession(ctx context.Context, userID, token string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByIDAndToken(ctx, userID, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	sessions, err := s.repomanager.Sessions(s.db).GetAllByUser(ctx, user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if !sessionActive(sessions, token, time.Now()) {
		return nil, common.ErrSessionExpired
	}

	return user, nil
}

// CreateSession mints an opaque refresh token and appends it to the user's
// session list. Either the session is durably stored and the token returned,
// or the call fails and no token is issued.
func (s *UserService) CreateSession(ctx context.Context, userID string) (string, error) {
	return s.createSession(ctx, s.db, userID)
}

// RevokeSession removes the session matching the presented token, logging out
// that device only.
func (s *UserService) RevokeSession(ctx context.Context, userID, token string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, userID, token); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// IssueAccessToken signs a fresh access token for an already-verified user.
func (s *UserService) IssueAccessToken(userID string) (string, error) {
	token, err := s.generateAccessToken(userID)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ChangePassword rehashes and stores a new password. This is the only update
// path that touches the hash; unrelated profile updates never rehash.
func (s *UserService) ChangePassword(ctx context.Context, userID, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, userID, string(hash))
}

// --- helpers below ---

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	return nil
}

// sessionActive reports whether any entry matching token is unexpired at now.
// Only entries with the exact token value are considered; other sessions of
// the same user do not affect the result.
func sessionActive(sessions []models.Session, token string, now time.Time) bool {
	for i := range sessions {
		if sessions[i].Token == token && sessions[i].Active(now) {
			return true
		}
	}
	return false
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(refreshTokenBytes)
}

func (s *UserService) createSession(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := s.generateRefreshToken()
	if err != nil {
		// entropy failure fails the whole operation
		return "", common.ErrorInternal
	}
	if err := s.repomanager.Sessions(db).Create(ctx, userID, token, s.refreshTokenValidityDuration); err != nil {
		return "", err
	}
	return token, nil
}

// generateTokenPair persists a new refresh session first and signs the access
// token last, so no access token exists for a session that failed to store.
func (s *UserService) generateTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	refresh, err := s.createSession(ctx, s.db, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
