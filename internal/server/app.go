// Package server assembles and runs the accounting service: configuration,
// database and migrations, file store, processor webhook and the HTTP API,
// with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"gestoria/internal/logging"
	"gestoria/internal/server/config"
	"gestoria/internal/server/filestore"
	"gestoria/internal/server/httpapi"
	"gestoria/internal/server/processor"
	"gestoria/internal/server/repositories/repomanager"
	"gestoria/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *services.AuthService
	uploads     *services.UploadService
	facturas    *services.FacturaService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// the pgx driver is registered by the repomanager package
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	store, err := filestore.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("file store init error: %w", err)
	}

	notifier := processor.New(cfg, logger)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: m,
		auth:        services.NewAuthService(db, m, cfg),
		uploads:     services.NewUploadService(db, m, store, notifier, cfg, logger),
		facturas:    services.NewFacturaService(db, m, store, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config, app.logger, app.auth, app.uploads, app.facturas)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		cancelFunc()
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "error closing database", "error", err)
	}
}
