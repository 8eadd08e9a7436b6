// Package server wires the API process: it opens PostgreSQL, applies
// migrations, and runs the HTTP API and the gRPC health service until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/config"
	gs "github.com/wbdash/wbdash/internal/server/grpc"
	"github.com/wbdash/wbdash/internal/server/httpapi"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
	"github.com/wbdash/wbdash/internal/server/services"
)

// Seams for tests.
var (
	sqlOpen        = sql.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
	newLogger      = func() logging.Logger { return logging.NewJSONLogger(os.Stdout, slog.LevelInfo) }
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewApp connects to the database and migrates it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger()

	db, err := sqlOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, repomanager: rm}, nil
}

func (app *App) Close() error { return app.db.Close() }

func (app *App) handler() *httpapi.Handler {
	return httpapi.NewHandler(
		services.NewUserService(app.db, app.repomanager, app.config),
		services.NewWbLkService(app.db, app.repomanager),
		services.NewAnalyticsService(app.db, app.repomanager),
		app.logger,
	)
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives. A
// failing server stops the other.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	authn := httpapi.NewAuthenticator(app.config.SecretKey, app.config.AllowUserIDHeader)
	httpSrv := httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.NewRouter(app.handler(), authn, app.logger), app.logger)
	grpcSrv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(ctx) })
	g.Go(func() error { return grpcSrv.Run(ctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}
	return nil
}
