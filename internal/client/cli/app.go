package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gestoria/internal/api"
	"gestoria/internal/client/config"
	"gestoria/internal/client/history"
	"gestoria/internal/client/rest"
	"gestoria/internal/client/session"
	"gestoria/internal/client/ui"
	"gestoria/internal/client/upload"
	"gestoria/internal/logging"
)

// View names one of the dashboard screens. The REPL tracks which view the
// operator is "on" so the session monitor can re-validate on every switch.
type View string

const (
	ViewUpload   View = "subidas"
	ViewHistory  View = "historico"
	ViewFacturas View = "facturas"
	ViewManual   View = "manual"
)

type sessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	Authenticated() bool
	Username() string
}

type viewMonitor interface {
	Start(ctx context.Context)
	OnViewChange(ctx context.Context)
}

type uploadService interface {
	Submit(ctx context.Context, queue upload.Queue, kind api.DocumentKind) (upload.Queue, error)
}

type historyService interface {
	Refresh(ctx context.Context) ([]api.UploadItem, error)
	Find(id string) (api.UploadItem, bool)
	Retry(ctx context.Context, id string, kind api.DocumentKind) error
}

type invoiceGateway interface {
	Me(ctx context.Context) (*api.User, error)
	Facturas(ctx context.Context, desde, hasta string) ([]api.Factura, error)
	ManualFactura(ctx context.Context, f rest.ManualFacturaForm) (*api.ManualFacturaResult, error)
}

type App struct {
	config   *config.Config
	session  sessionService
	monitor  viewMonitor
	batch    uploadService
	tracker  historyService
	gateway  invoiceGateway
	notifier ui.Notifier
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	queue upload.Queue
	kind  api.DocumentKind
	view  View
}

// NewApp wires the REST gateway, session manager, monitor, batch uploader
// and history tracker into a runnable console application.
func NewApp(c *config.Config, log logging.Logger) *App {
	out := os.Stdout

	gw := rest.NewClient(c.ServerEndpointAddr, log)
	notifier := ui.NewConsoleNotifier(out)

	sess := session.NewManager(gw, notifier, log)
	gw.SetSessionExpiredHook(sess.Invalidate)

	mon := session.NewMonitor(gw, sess, c.ValidateInterval, log)
	tracker := history.NewTracker(gw, notifier, c.HistoryLimit, log)

	batch := upload.NewBatch(gw, gw, notifier, c.UploadDelay, log)
	batch.SetUploadedHook(func(ctx context.Context) {
		// Refresh failures are logged by the tracker; the batch keeps going.
		_, _ = tracker.Refresh(ctx)
	})

	return &App{
		config:   c,
		session:  sess,
		monitor:  mon,
		batch:    batch,
		tracker:  tracker,
		gateway:  gw,
		notifier: notifier,
		log:      log.With("module", "cli"),
		reader:   bufio.NewReader(os.Stdin),
		out:      out,
	}
}

// Run starts the background session monitor and blocks in the REPL until
// the operator exits or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.monitor.Start(ctx)

	fmt.Fprintln(a.out, "Gestoria CLI (escribe 'help' para ver los comandos)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	s := ""
	if a.session.Username() != "" {
		s = a.session.Username() + " "
	}
	if a.view != "" {
		s += string(a.view)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// enterView records the active view and runs the view-change validation.
// It reports whether the session survived: a failed validation forces a
// logout and the command must not proceed.
func (a *App) enterView(ctx context.Context, v View) bool {
	if !a.isLoggedIn() {
		a.notifier.Notify("Inicia sesión primero.")
		return false
	}
	a.view = v
	a.monitor.OnViewChange(ctx)
	return a.isLoggedIn()
}
