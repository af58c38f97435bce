package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gestoria/internal/api"
	"gestoria/internal/client/upload"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Upload walks the operator through the upload view: pick the document
// kind, add files to the queue, review it, confirm and submit the batch.
//
// The queue survives a canceled run, so re-entering the view continues
// where the operator left off. After a completed batch the queue comes
// back empty.
func (a *App) Upload(ctx context.Context) error {
	if !a.enterView(ctx, ViewUpload) {
		return nil
	}

	if err := a.promptKind(); err != nil {
		return err
	}

	candidates, err := a.collectCandidates()
	if err != nil {
		return err
	}
	if len(candidates) > 0 {
		queue, ignored := a.queue.Add(candidates...)
		a.queue = queue
		if len(ignored) > 0 {
			a.notifier.Notify("Algunos archivos fueron ignorados: " + strings.Join(ignored, ", "))
		}
	}

	a.printQueue()
	if len(a.queue) == 0 {
		a.notifier.Notify("No hay archivos en la cola.")
		return nil
	}
	a.reviewQueue()
	if len(a.queue) == 0 {
		a.notifier.Notify("No hay archivos en la cola.")
		return nil
	}

	ok, err := a.confirm(fmt.Sprintf("¿Subir %d archivos como %s? (s/n)", len(a.queue), a.kind))
	if err != nil || !ok {
		a.notifier.Notify("Subida cancelada.")
		return err
	}

	queue, err := a.batch.Submit(ctx, a.queue, a.kind)
	a.queue = queue
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrEmptyQueue):
			a.notifier.Notify("No hay archivos en la cola.")
		case errors.Is(err, upload.ErrNoKind):
			a.notifier.Notify("Selecciona el tipo de documento.")
		case errors.Is(err, upload.ErrNoCredential):
			a.notifier.Notify("Inicia sesión para subir archivos.")
		default:
			return err
		}
	}
	return nil
}

// promptKind asks for the document kind. An empty answer keeps the current
// selection when there is one.
func (a *App) promptKind() error {
	prompt := "Tipo de documento (factura/venta)"
	if a.kind.Valid() {
		prompt += fmt.Sprintf(" [%s]", a.kind)
	}
	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if raw == "" && a.kind.Valid() {
		return nil
	}
	kind, err := api.ParseDocumentKind(raw)
	if err != nil {
		a.notifier.Notify(err.Error())
		return err
	}
	a.kind = kind
	return nil
}

// collectCandidates reads file paths until an empty line and loads each
// file from disk. Unreadable paths are reported and skipped.
func (a *App) collectCandidates() ([]upload.FileCandidate, error) {
	var candidates []upload.FileCandidate
	for {
		path, err := getSimpleText(a.reader, "Ruta del archivo (línea vacía para terminar)", a.out)
		if err != nil || path == "" {
			return candidates, nil
		}
		data, err := readFile(path)
		if err != nil {
			a.notifier.Notify(fmt.Sprintf("No se pudo leer %s: %v", path, err))
			continue
		}
		name := filepath.Base(path)
		candidates = append(candidates, upload.FileCandidate{
			Name:        name,
			Size:        int64(len(data)),
			ContentType: mime.TypeByExtension(filepath.Ext(name)),
			Data:        data,
		})
	}
}

func (a *App) printQueue() {
	if len(a.queue) == 0 {
		fmt.Fprintln(a.out, "Cola vacía.")
		return
	}
	fmt.Fprintln(a.out, "Cola de subida:")
	for _, f := range a.queue {
		fmt.Fprintf(a.out, "  %s (%d bytes)\n", f.Name, f.Size)
	}
}

// reviewQueue lets the operator drop queued files by name before the batch
// is confirmed.
func (a *App) reviewQueue() {
	for {
		name, err := getSimpleText(a.reader, "Quitar archivo por nombre (línea vacía para continuar)", a.out)
		if err != nil || name == "" {
			return
		}
		removed := false
		for _, f := range a.queue {
			if f.Name == name {
				a.queue = a.queue.Remove(f.Name, f.Size)
				removed = true
				break
			}
		}
		if !removed {
			a.notifier.Notify("No está en la cola: " + name)
		}
	}
}

func (a *App) confirm(prompt string) (bool, error) {
	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(raw) {
	case "s", "si", "sí", "y":
		return true, nil
	}
	return false, nil
}
