// Package httpapi exposes the accounting service over REST: token login,
// document intake, processing retries, upload history, invoice listing and
// manual entry, and the callback the processing pipeline reports back to.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gestoria/internal/api"
	"gestoria/internal/logging"
	sc "gestoria/internal/server/config"
	"gestoria/internal/server/models"
	"gestoria/internal/server/services"
)

// AuthService resolves operator credentials and bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// UploadService runs document intake, processing retries and the history view.
type UploadService interface {
	Store(ctx context.Context, user *models.User, kind api.DocumentKind, filename, contentType string, data []byte) (*models.Upload, error)
	Retry(ctx context.Context, user *models.User, id string, kind api.DocumentKind) (*services.RetryOutcome, error)
	ListRecent(ctx context.Context, limit int) ([]models.Upload, error)
}

// FacturaService lists and records invoices.
type FacturaService interface {
	List(ctx context.Context, desde, hasta string) ([]models.Factura, error)
	ManualEntry(ctx context.Context, user *models.User, in *services.ManualFacturaInput) (*models.Factura, string, error)
	ProcessCallback(ctx context.Context, p *services.CallbackPayload) (*services.CallbackOutcome, error)
}

type HTTPServer struct {
	address        string
	maxUploadBytes int64
	webhookSecret  string
	auth           AuthService
	uploads        UploadService
	facturas       FacturaService
	loc            *time.Location
	logger         logging.Logger
}

// NewHTTPServer wires the REST surface. The display time zone comes from
// config and is resolved here so a bad name fails startup instead of every
// history request.
func NewHTTPServer(cfg *sc.Config, l logging.Logger, as AuthService, us UploadService, fs FacturaService) (*HTTPServer, error) {
	loc, err := time.LoadLocation(cfg.DisplayTimeZone)
	if err != nil {
		return nil, err
	}

	return &HTTPServer{
		address:        cfg.EndpointAddrHTTP,
		maxUploadBytes: cfg.MaxUploadBytes,
		webhookSecret:  cfg.WebhookSecret,
		auth:           as,
		uploads:        us,
		facturas:       fs,
		loc:            loc,
		logger:         l.With("module", "http_server"),
	}, nil
}

func (s *HTTPServer) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/token", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/upload/callback", s.handleCallback).Methods(http.MethodPost)

	r.Handle("/auth/me", s.requireUser(s.handleMe)).Methods(http.MethodGet)
	r.Handle("/api/upload/", s.requireUser(s.handleUpload)).Methods(http.MethodPost)
	r.Handle("/api/upload/{id}/retry", s.requireUser(s.handleRetry)).Methods(http.MethodPost)
	r.Handle("/api/uploads/historico", s.requireUser(s.handleHistorico)).Methods(http.MethodGet)
	r.Handle("/api/facturas", s.requireUser(s.handleFacturas)).Methods(http.MethodGet)
	r.Handle("/api/facturas/manual", s.requireUser(s.handleManualFactura)).Methods(http.MethodPost)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
