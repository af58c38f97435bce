// Package services contains the server-side business logic: credential
// verification and token issue, document intake and processing retries, and
// invoice persistence driven by processor callbacks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gestoria/internal/server/auth"
	sc "gestoria/internal/server/config"
	"gestoria/internal/server/models"
	"gestoria/internal/server/repositories/repomanager"
	"gestoria/internal/server/repositories/users"
)

// ErrInvalidCredentials is returned by Login for unknown users, wrong
// passwords and disabled accounts alike, so a caller cannot tell which
// part failed.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// AuthService verifies operator credentials and resolves bearer tokens.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login checks the credentials against the users table and mints an access
// token valid for the configured duration.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading user: %v", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	if user.Disabled {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.accessTokenValidityDuration)
}

// UserFromToken validates the bearer token and loads the account it was
// issued for. Every validation failure, including an account that has
// vanished since issue, is reported as auth.ErrInvalidToken.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("error loading user: %v", err)
	}

	return user, nil
}
