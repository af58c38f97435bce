// Package history tracks past submissions: it holds the latest page of
// upload records fetched from the backend and drives the manual retry
// action for failed ones.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gestoria/internal/api"
	"gestoria/internal/client/ui"
	"gestoria/internal/logging"
)

// ErrRetryPending means a retry for the same record id is still in flight;
// a second one is not started until the first resolves.
var ErrRetryPending = errors.New("retry already in flight for this record")

// Gateway is the slice of the REST client the tracker needs.
type Gateway interface {
	Historico(ctx context.Context, limit int) ([]api.UploadItem, error)
	Retry(ctx context.Context, id string, kind api.DocumentKind) (*api.RetryResult, error)
}

// Tracker caches the most recent upload records, newest first, bounded by
// a fixed page size. Refresh is idempotent and is triggered after login,
// after every successful upload in a batch, and after every retry attempt.
type Tracker struct {
	gw       Gateway
	notifier ui.Notifier
	log      logging.Logger
	limit    int

	mu       sync.Mutex
	items    []api.UploadItem
	retrying map[string]bool
}

func NewTracker(gw Gateway, notifier ui.Notifier, limit int, log logging.Logger) *Tracker {
	return &Tracker{
		gw:       gw,
		notifier: notifier,
		log:      log.With("module", "history"),
		limit:    limit,
		retrying: make(map[string]bool),
	}
}

// Refresh reloads the record list from the backend, replacing the cached
// page, and returns it. The backend owns ordering and statuses; nothing is
// mutated locally.
func (t *Tracker) Refresh(ctx context.Context) ([]api.UploadItem, error) {
	items, err := t.gw.Historico(ctx, t.limit)
	if err != nil {
		t.log.Warn(ctx, "history refresh failed", "error", err)
		return nil, err
	}

	t.mu.Lock()
	t.items = items
	t.mu.Unlock()

	t.log.Debug(ctx, "history refreshed", "records", len(items))
	return items, nil
}

// Items returns a copy of the cached record page.
func (t *Tracker) Items() []api.UploadItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]api.UploadItem, len(t.items))
	copy(out, t.items)
	return out
}

// Find looks a record up in the cached page by id.
func (t *Tracker) Find(id string) (api.UploadItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, it := range t.items {
		if it.ID == id {
			return it, true
		}
	}
	return api.UploadItem{}, false
}

// Retry re-invokes the processing trigger for one record. While a retry
// for a given id is in flight another one for the same id is refused with
// ErrRetryPending; other records are unaffected. The displayed status is
// never touched here — the refresh after the attempt picks up whatever
// the backend decided.
func (t *Tracker) Retry(ctx context.Context, id string, kind api.DocumentKind) error {
	t.mu.Lock()
	if t.retrying[id] {
		t.mu.Unlock()
		return ErrRetryPending
	}
	t.retrying[id] = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.retrying, id)
		t.mu.Unlock()
	}()

	res, err := t.gw.Retry(ctx, id, kind)
	if err != nil {
		t.notifier.Notify(fmt.Sprintf("No se pudo reintentar %s: %v", id, err))
		t.log.Warn(ctx, "retry failed", "id", id, "error", err)
	} else if !res.OK {
		t.notifier.Notify(fmt.Sprintf("El reintento de %s falló (procesador %d): %s", id, res.ProcessorStatus, res.ProcessorDetail))
	} else {
		t.notifier.Notify(fmt.Sprintf("Reintento lanzado para %s", id))
	}

	if _, rerr := t.Refresh(ctx); rerr != nil {
		t.log.Warn(ctx, "refresh after retry failed", "id", id, "error", rerr)
	}

	return err
}

// RetryPending reports whether a retry for the record is currently in
// flight. The UI uses it to keep the retry control disabled.
func (t *Tracker) RetryPending(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retrying[id]
}
