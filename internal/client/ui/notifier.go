// Package ui decouples operator-facing notifications from the packages
// that raise them, so upload and session logic can be tested without a
// terminal attached.
package ui

import (
	"fmt"
	"io"
)

// Notifier delivers messages to the operator. Alert is for messages the
// operator must acknowledge mentally before anything else makes sense
// (session expired, batch finished); Notify is for transient notices that
// must not interrupt the flow (one file failed, some files were ignored).
type Notifier interface {
	Alert(msg string)
	Notify(msg string)
}

// ConsoleNotifier prints notifications line by line.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Alert(msg string) {
	fmt.Fprintf(n.w, "[AVISO] %s\n", msg)
}

func (n *ConsoleNotifier) Notify(msg string) {
	fmt.Fprintln(n.w, msg)
}
