package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gestoria/internal/server/auth"
	"gestoria/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// detailInvalidCredential is the 401 body of every guarded endpoint, one
// message for missing, malformed, expired and orphaned tokens alike.
const detailInvalidCredential = "Could not validate credentials"

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireUser resolves the bearer token to an operator account and stores it
// on the request context for the wrapped handler.
func (s *HTTPServer) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := bearerToken(r)
		if token == "" {
			s.unauthorized(w)
			return
		}

		user, err := s.auth.UserFromToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				s.unauthorized(w)
				return
			}
			s.logger.Error(r.Context(), "error resolving token", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detailInvalidCredential)
}

// userFrom returns the operator stored by requireUser, nil on routes that
// skipped the middleware.
func userFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
