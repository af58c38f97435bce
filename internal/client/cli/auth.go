package cli

import (
	"context"
	"errors"
	"fmt"

	"gestoria/internal/client/rest"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the operator for credentials and tries to authenticate.
//
// On success the history cache is warmed up and the console lands on the
// uploads view. Failures are translated into operator notices: wrong
// credentials, unreachable server, or the raw error for anything else.
// The underlying error is returned unchanged for callers that care.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.notifier.Notify("Ya hay una sesión iniciada.")
		return nil
	}

	username, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		switch {
		case errors.Is(err, rest.ErrUnauthorized):
			a.notifier.Notify("Credenciales incorrectas.")
		case errors.Is(err, rest.ErrUnavailable):
			a.notifier.Notify("El servidor no está disponible.")
		default:
			a.notifier.Notify(fmt.Sprintf("No se pudo iniciar sesión: %v", err))
		}
		return err
	}

	a.notifier.Notify("Sesión iniciada.")
	a.view = ViewUpload

	if _, err := a.tracker.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "history refresh after login failed", "error", err)
	}
	return nil
}

// Logout closes the session and drops any files still queued for upload.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.view = ""
	a.queue = a.queue.Clear()
	return nil
}

// WhoAmI probes /auth/me and prints the authenticated operator.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.gateway.Me(ctx)
	if err != nil {
		a.notifier.Notify(fmt.Sprintf("No se pudo consultar la sesión: %v", err))
		return err
	}
	if u.FullName != "" {
		fmt.Fprintf(a.out, "%s (%s)\n", u.Username, u.FullName)
	} else {
		fmt.Fprintln(a.out, u.Username)
	}
	return nil
}
