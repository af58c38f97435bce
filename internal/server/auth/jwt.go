// Package auth issues and validates the bearer tokens used by the HTTP API
// and hashes operator passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token fails signature or structural
// validation. Expired tokens surface jwt.ErrTokenExpired instead.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the registered claims plus the user identity fields the
// API needs to resolve the caller without a database round trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string
	Username string
}

// GenerateToken signs an HS256 token for the given user. Subject is set to
// the username so tokens stay readable by external tooling; the jti is a
// fresh UUID so concurrent logins produce distinct tokens.
func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
