package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gestoria/internal/api"
	"gestoria/internal/client/ui"
	"gestoria/internal/logging"
)

// Precondition violations: the batch never starts when one of these holds.
var (
	ErrEmptyQueue   = errors.New("upload queue is empty")
	ErrNoKind       = errors.New("document kind not chosen")
	ErrNoCredential = errors.New("not logged in")
)

// Gateway is the slice of the REST client the controller submits through.
type Gateway interface {
	Upload(ctx context.Context, filename string, content []byte, kind api.DocumentKind) (*api.UploadResult, error)
}

// CredentialSource answers whether a bearer credential is currently held.
type CredentialSource interface {
	HasCredential() bool
}

// Batch drains a queue through the gateway strictly sequentially: the
// request for file i+1 is not built until file i's response has resolved.
// Every accepted upload triggers a processing chain downstream; the
// inter-item delay paces that chain.
type Batch struct {
	gw       Gateway
	creds    CredentialSource
	notifier ui.Notifier
	log      logging.Logger

	delay time.Duration

	onUploaded func(ctx context.Context)
}

// NewBatch builds a controller with the given inter-item pacing delay.
// Zero disables pacing.
func NewBatch(gw Gateway, creds CredentialSource, notifier ui.Notifier, delay time.Duration, log logging.Logger) *Batch {
	return &Batch{
		gw:       gw,
		creds:    creds,
		notifier: notifier,
		log:      log.With("module", "batch"),
		delay:    delay,
	}
}

// SetUploadedHook installs the callback run after each successful upload.
// The application wires this to a history refresh so every accepted file
// shows up immediately, not only when the batch ends.
func (b *Batch) SetUploadedHook(h func(ctx context.Context)) {
	b.onUploaded = h
}

// Submit drains the queue under one document kind and returns the queue's
// new state: nil after a completed batch, unchanged when a precondition
// fails and nothing was started.
//
// Failures are isolated per file: a non-success response is reported with
// the backend's detail and the loop moves on. The closing confirmation
// counts the files processed, not the ones that succeeded — individual
// failures were already reported during the run.
func (b *Batch) Submit(ctx context.Context, queue Queue, kind api.DocumentKind) (Queue, error) {
	if len(queue) == 0 {
		return queue, ErrEmptyQueue
	}
	if !kind.Valid() {
		return queue, ErrNoKind
	}
	if !b.creds.HasCredential() {
		return queue, ErrNoCredential
	}

	b.log.Info(ctx, "batch started", "files", len(queue), "tipo", kind, "delay", b.delay)

	for i, f := range queue {
		_, err := b.gw.Upload(ctx, f.Name, f.Data, kind)
		if err != nil {
			b.notifier.Notify(fmt.Sprintf("Error subiendo %s: %v", f.Name, err))
			b.log.Warn(ctx, "upload failed", "filename", f.Name, "error", err)
		} else {
			b.log.Info(ctx, "upload ok", "filename", f.Name)
			if h := b.onUploaded; h != nil {
				h(ctx)
			}
		}

		if b.delay > 0 && i < len(queue)-1 {
			sleep(ctx, b.delay)
		}
	}

	b.notifier.Alert(fmt.Sprintf("%d archivos subidos", len(queue)))
	return nil, nil
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
