// Package session owns the operator session: the two-state machine around
// the bearer credential (authenticated / unauthenticated) and the monitor
// that keeps revalidating it against the backend.
//
// The credential itself lives in the REST gateway; this package drives the
// transitions. Login stores a token, logout and invalidation clear it.
// Invalidation is idempotent: however many 401s or failed validations race
// in, the operator sees exactly one expiry alert per authenticated epoch.
package session

import (
	"context"
	"sync"

	"gestoria/internal/api"
	"gestoria/internal/client/ui"
	"gestoria/internal/logging"
)

// Gateway is the slice of the REST client the session layer needs.
type Gateway interface {
	Login(ctx context.Context, username, password string) error
	Me(ctx context.Context) (*api.User, error)
	ClearAccessToken()
	HasCredential() bool
}

// Manager performs the session state transitions. All mutations are
// serialized on one mutex so concurrent invalidations (timer validation,
// view validation, an in-flight upload all hitting 401 at once) collapse
// into a single logout.
type Manager struct {
	gw       Gateway
	notifier ui.Notifier
	log      logging.Logger

	mu       sync.Mutex
	username string
}

func NewManager(gw Gateway, notifier ui.Notifier, log logging.Logger) *Manager {
	return &Manager{
		gw:       gw,
		notifier: notifier,
		log:      log.With("module", "session"),
	}
}

// Login authenticates the operator and moves the session to Authenticated.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if err := m.gw.Login(ctx, username, password); err != nil {
		return err
	}

	m.mu.Lock()
	m.username = username
	m.mu.Unlock()

	m.log.Info(ctx, "login ok", "user", username)
	return nil
}

// Logout is the explicit operator-initiated transition to Unauthenticated.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.gw.HasCredential() {
		return
	}
	m.gw.ClearAccessToken()
	m.username = ""
	m.notifier.Notify("Sesión cerrada.")
}

// Invalidate is the forced transition to Unauthenticated: any 401 seen by
// the gateway, or a failed session validation, lands here. The operator is
// alerted before the credential is dropped; once the session is already
// unauthenticated further calls do nothing, so the alert shows only once.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.gw.HasCredential() {
		return
	}
	m.notifier.Alert("Sesión expirada. Vuelve a iniciar sesión.")
	m.gw.ClearAccessToken()
	m.username = ""
}

// Authenticated reports whether a credential is currently held. The UI
// derives its view from this, so clearing the credential is all it takes
// to land the operator back on the login screen.
func (m *Manager) Authenticated() bool {
	return m.gw.HasCredential()
}

// Username returns the account the session was opened with.
func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}
