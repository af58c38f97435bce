// Package cli provides the interactive Gestoria operator console.
//
// It wires configuration, the REST gateway, the session state machine, the
// upload queue and an interactive REPL organized around the dashboard views:
// uploads, history, invoices and manual entry. Switching views re-validates
// the stored session, so an expired credential interrupts whatever the
// operator was about to do and drops back to the login prompt.
//
// Key features:
//   - Login / Logout against the accounting backend
//   - Batch document upload with queue review and per-file failure notices
//   - Upload history with manual retry of failed items
//   - Invoice listing and manual invoice entry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL, and session.Monitor for details.
package cli
