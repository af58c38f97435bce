package cli

import (
	"context"
	"errors"
	"fmt"

	"gestoria/internal/api"
	"gestoria/internal/client/history"
)

// History refreshes and prints the upload history, most recent first.
func (a *App) History(ctx context.Context) error {
	if !a.enterView(ctx, ViewHistory) {
		return nil
	}

	items, err := a.tracker.Refresh(ctx)
	if err != nil {
		a.notifier.Notify(fmt.Sprintf("No se pudo actualizar el histórico: %v", err))
		return err
	}
	a.printHistory(items)
	return nil
}

func (a *App) printHistory(items []api.UploadItem) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Sin subidas registradas.")
		return
	}
	fmt.Fprintf(a.out, "%-8s %-20s %-8s %-12s %s\n", "ID", "FECHA", "TIPO", "ESTADO", "ARCHIVO")
	for _, it := range items {
		fmt.Fprintf(a.out, "%-8s %-20s %-8s %-12s %s\n", it.ID, it.Fecha, it.Tipo, it.Status, it.OriginalFilename)
	}
}

// Retry re-triggers processing of a failed upload. Only records the
// history reports as failed qualify; everything else gets a notice and the
// record's displayed status is left alone.
func (a *App) Retry(ctx context.Context, id string) error {
	if !a.enterView(ctx, ViewHistory) {
		return nil
	}

	if id == "" {
		var err error
		id, err = getSimpleText(a.reader, "ID de la subida a reintentar", a.out)
		if err != nil {
			return err
		}
	}

	rec, ok := a.tracker.Find(id)
	if !ok {
		// Cold cache: one refresh before giving up on the id.
		if _, err := a.tracker.Refresh(ctx); err != nil {
			a.notifier.Notify(fmt.Sprintf("No se pudo actualizar el histórico: %v", err))
			return err
		}
		rec, ok = a.tracker.Find(id)
	}
	if !ok {
		a.notifier.Notify(fmt.Sprintf("No hay ninguna subida con id %s.", id))
		return nil
	}

	if !rec.Status.CanRetry() {
		a.notifier.Notify("Solo se pueden reintentar subidas fallidas.")
		return nil
	}

	if err := a.tracker.Retry(ctx, id, rec.Tipo); err != nil {
		if errors.Is(err, history.ErrRetryPending) {
			a.notifier.Notify(fmt.Sprintf("Ya hay un reintento en curso para %s.", id))
			return nil
		}
		// Transport failures were already reported by the tracker.
		return err
	}
	return nil
}
