package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gestoria/internal/server/auth"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def", "abc.def"},
		{"lowercase scheme", "bearer abc.def", "abc.def"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireUser_MissingToken(t *testing.T) {
	s := newTestServer(t, &fakeAuth{user: testOperator}, &fakeUploads{}, &fakeFacturas{})

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	wantError(t, rec, http.StatusUnauthorized, "Could not validate credentials")
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
	}
}

func TestRequireUser_InvalidToken(t *testing.T) {
	fa := &fakeAuth{tokenErr: auth.ErrInvalidToken}
	s := newTestServer(t, fa, &fakeUploads{}, &fakeFacturas{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired.token")
	rec := doRequest(s, req)

	wantError(t, rec, http.StatusUnauthorized, "Could not validate credentials")
	if fa.gotToken != "expired.token" {
		t.Errorf("token passed to auth service = %q", fa.gotToken)
	}
}

func TestRequireUser_LookupError(t *testing.T) {
	s := newTestServer(t, &fakeAuth{tokenErr: errBoom{}}, &fakeUploads{}, &fakeFacturas{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := doRequest(s, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGuardedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, &fakeAuth{user: testOperator}, &fakeUploads{}, &fakeFacturas{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/api/upload/"},
		{http.MethodPost, "/api/upload/up-1/retry"},
		{http.MethodGet, "/api/uploads/historico"},
		{http.MethodGet, "/api/facturas"},
		{http.MethodPost, "/api/facturas/manual"},
	}

	for _, rt := range routes {
		rec := doRequest(s, httptest.NewRequest(rt.method, rt.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", rt.method, rt.path, rec.Code)
		}
	}
}
