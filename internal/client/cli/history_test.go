package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestoria/internal/api"
	"gestoria/internal/client/history"
)

func TestHistory_PrintsTable(t *testing.T) {
	ta := newTestApp()
	ta.tracker.items = []api.UploadItem{
		{ID: "42", Fecha: "25/08/2026 10:15", Tipo: api.KindFactura, Status: api.StatusProcessed, OriginalFilename: "enero.pdf"},
		{ID: "41", Fecha: "24/08/2026 18:02", Tipo: api.KindVenta, Status: api.StatusFailed, OriginalFilename: "ventas.xlsx"},
	}

	err := ta.app.History(context.Background())
	require.NoError(t, err)

	out := ta.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "enero.pdf")
	assert.Contains(t, out, "ventas.xlsx")
	assert.Contains(t, out, "FAILED")
	assert.Equal(t, 1, ta.tracker.refreshes, "History always refreshes first")
}

func TestHistory_Empty(t *testing.T) {
	ta := newTestApp()

	err := ta.app.History(context.Background())
	require.NoError(t, err)

	assert.Contains(t, ta.out.String(), "Sin subidas registradas.")
}

func TestHistory_RefreshFailure(t *testing.T) {
	ta := newTestApp()
	ta.tracker.refreshErr = errors.New("boom")

	err := ta.app.History(context.Background())
	require.Error(t, err)

	assert.Contains(t, ta.notifier.all(), "No se pudo actualizar el histórico: boom")
}

func TestHistory_RequiresLogin(t *testing.T) {
	ta := newTestApp()
	ta.sess.authed = false

	err := ta.app.History(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, ta.tracker.refreshes)
	assert.Contains(t, ta.notifier.all(), "Inicia sesión primero.")
}

func TestRetry_UsesRecordKind(t *testing.T) {
	ta := newTestApp()
	ta.tracker.items = []api.UploadItem{
		{ID: "41", Tipo: api.KindVenta, Status: api.StatusFailed},
	}

	err := ta.app.Retry(context.Background(), "41")
	require.NoError(t, err)

	assert.Equal(t, "41", ta.tracker.retryID)
	assert.Equal(t, api.KindVenta, ta.tracker.retryKind)
}

func TestRetry_PromptsForMissingID(t *testing.T) {
	ta := newTestApp("41")
	ta.tracker.items = []api.UploadItem{
		{ID: "41", Tipo: api.KindFactura, Status: api.StatusFailed},
	}

	err := ta.app.Retry(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "41", ta.tracker.retryID)
}

func TestRetry_ColdCacheRefreshesOnce(t *testing.T) {
	ta := newTestApp()
	ta.tracker.afterRefresh = []api.UploadItem{
		{ID: "41", Tipo: api.KindVenta, Status: api.StatusFailed},
	}

	err := ta.app.Retry(context.Background(), "41")
	require.NoError(t, err)

	assert.Equal(t, 1, ta.tracker.refreshes)
	assert.Equal(t, "41", ta.tracker.retryID)
}

func TestRetry_UnknownID(t *testing.T) {
	ta := newTestApp()

	err := ta.app.Retry(context.Background(), "99")
	require.NoError(t, err)

	assert.Empty(t, ta.tracker.retryID)
	assert.Contains(t, ta.notifier.all(), "No hay ninguna subida con id 99.")
}

func TestRetry_OnlyFailedRecords(t *testing.T) {
	for _, status := range []api.UploadStatus{
		api.StatusUploaded,
		api.StatusProcessing,
		api.StatusProcessed,
		api.StatusDuplicated,
	} {
		t.Run(string(status), func(t *testing.T) {
			ta := newTestApp()
			ta.tracker.items = []api.UploadItem{
				{ID: "41", Tipo: api.KindFactura, Status: status},
			}

			err := ta.app.Retry(context.Background(), "41")
			require.NoError(t, err)

			assert.Empty(t, ta.tracker.retryID)
			assert.Contains(t, ta.notifier.all(), "Solo se pueden reintentar subidas fallidas.")
		})
	}
}

func TestRetry_PendingGuard(t *testing.T) {
	ta := newTestApp()
	ta.tracker.items = []api.UploadItem{
		{ID: "41", Tipo: api.KindFactura, Status: api.StatusFailed},
	}
	ta.tracker.retryErr = history.ErrRetryPending

	err := ta.app.Retry(context.Background(), "41")
	require.NoError(t, err)

	assert.Contains(t, ta.notifier.all(), "Ya hay un reintento en curso para 41.")
}

func TestRetry_TransportErrorPropagates(t *testing.T) {
	ta := newTestApp()
	ta.tracker.items = []api.UploadItem{
		{ID: "41", Tipo: api.KindFactura, Status: api.StatusFailed},
	}
	ta.tracker.retryErr = errors.New("conexión rechazada")

	err := ta.app.Retry(context.Background(), "41")
	require.Error(t, err)
}
