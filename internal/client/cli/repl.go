package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Upload(ctx context.Context) error
	History(ctx context.Context) error
	Retry(ctx context.Context, id string) error
	Facturas(ctx context.Context, desde, hasta string) error
	ManualFactura(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Gestoria console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                    — show available commands
//	  - login                   — authenticate
//	  - exit | quit             — leave the program
//
//	Logged in:
//	  - help                    — show available commands
//	  - upload | subir          — queue documents and submit the batch
//	  - history | historico     — show the upload history
//	  - retry <id>              — re-trigger processing of a failed upload
//	  - facturas [desde hasta]  — list stored invoices (ISO dates)
//	  - manual                  — register an invoice by hand
//	  - whoami                  — show the authenticated operator
//	  - logout                  — close the session
//	  - exit | quit             — leave the program
//
// Any errors returned by command handlers are ignored here; handlers notify
// the operator themselves. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gestoria %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Comandos disponibles: upload, history, retry <id>, facturas [desde hasta], manual, whoami, logout, exit")
			} else {
				printlnFn("Comandos disponibles: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "upload", "subir":
			_ = a.Upload(ctx)

		case "history", "historico":
			_ = a.History(ctx)

		case "retry":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.Retry(ctx, id)

		case "facturas":
			desde, hasta := "", ""
			if len(args) > 0 {
				desde = args[0]
			}
			if len(args) > 1 {
				hasta = args[1]
			}
			_ = a.Facturas(ctx, desde, hasta)

		case "manual":
			_ = a.ManualFactura(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Hasta luego!")
			return

		default:
			printlnFn("Comando desconocido:", cmd)
		}
	}
}
