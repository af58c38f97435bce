package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gestoria/internal/server/auth"
	sc "gestoria/internal/server/config"
	"gestoria/internal/server/models"
	"gestoria/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	getOut *models.User
	getErr error

	gotUsername string
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.gotUsername = username
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func newAuthService(t *testing.T, u *fakeUsersRepo) *AuthService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := &sc.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour}
	return NewAuthService(db, &fakeRepoManager{u: u}, cfg)
}

func demoUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{ID: "u1", Username: "demo@demo.com", FullName: "Demo User", PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	user := demoUser(t, "demo")
	repo := &fakeUsersRepo{getOut: user}
	s := newAuthService(t, repo)

	tok, err := s.Login(context.Background(), "demo@demo.com", "demo")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if repo.gotUsername != "demo@demo.com" {
		t.Fatalf("looked up %q", repo.gotUsername)
	}

	claims, err := auth.ParseToken(tok, []byte("test-secret"))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "demo@demo.com" || claims.UserID != "u1" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		repo     *fakeUsersRepo
		password string
	}{
		{"unknown user", &fakeUsersRepo{getErr: users.ErrNotFound}, "demo"},
		{"wrong password", &fakeUsersRepo{getOut: demoUser(t, "demo")}, "nope"},
		{"disabled account", &fakeUsersRepo{getOut: func() *models.User {
			u := demoUser(t, "demo")
			u.Disabled = true
			return u
		}()}, "demo"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newAuthService(t, tc.repo)
			_, err := s.Login(context.Background(), "demo@demo.com", tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogin_RepoError(t *testing.T) {
	s := newAuthService(t, &fakeUsersRepo{getErr: errBoom{}})

	_, err := s.Login(context.Background(), "demo@demo.com", "demo")
	if err == nil || !strings.Contains(err.Error(), "error loading user") {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("repo errors must not read as bad credentials")
	}
}

func TestUserFromToken_Success(t *testing.T) {
	user := demoUser(t, "demo")
	repo := &fakeUsersRepo{getOut: user}
	s := newAuthService(t, repo)

	tok, err := auth.GenerateToken("u1", "demo@demo.com", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := s.UserFromToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("UserFromToken error: %v", err)
	}
	if got.ID != "u1" || repo.gotUsername != "demo@demo.com" {
		t.Fatalf("got user %+v, looked up %q", got, repo.gotUsername)
	}
}

func TestUserFromToken_Invalid(t *testing.T) {
	s := newAuthService(t, &fakeUsersRepo{getOut: demoUser(t, "demo")})

	for _, tok := range []string{"", "not.a.jwt"} {
		if _, err := s.UserFromToken(context.Background(), tok); !errors.Is(err, auth.ErrInvalidToken) {
			t.Fatalf("token %q: want ErrInvalidToken, got %v", tok, err)
		}
	}

	// wrong signing key
	tok, _ := auth.GenerateToken("u1", "demo@demo.com", []byte("other"), time.Hour)
	if _, err := s.UserFromToken(context.Background(), tok); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("wrong key: want ErrInvalidToken, got %v", err)
	}

	// expired
	tok, _ = auth.GenerateToken("u1", "demo@demo.com", []byte("test-secret"), -time.Minute)
	if _, err := s.UserFromToken(context.Background(), tok); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expired: want ErrInvalidToken, got %v", err)
	}
}

func TestUserFromToken_AccountVanished(t *testing.T) {
	s := newAuthService(t, &fakeUsersRepo{getErr: users.ErrNotFound})

	tok, _ := auth.GenerateToken("u1", "demo@demo.com", []byte("test-secret"), time.Hour)
	if _, err := s.UserFromToken(context.Background(), tok); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
