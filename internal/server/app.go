// Package server wires the projectvault server together: database and
// migrations, the cipher, the access gate and vault service, and the gRPC
// endpoint. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/projectvault/internal/cryptox"
	"github.com/dmitrijs2005/projectvault/internal/logging"
	"github.com/dmitrijs2005/projectvault/internal/server/config"
	"github.com/dmitrijs2005/projectvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/projectvault/internal/server/services"

	gs "github.com/dmitrijs2005/projectvault/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	vault  *services.VaultService
}

// NewApp connects to the database, applies migrations and builds the
// services. A missing encryption key is not fatal here; it surfaces on the
// first secret operation.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.EncryptionKey == "" {
		logger.Warn(ctx, "encryption key is not set, secret operations will fail")
	}
	cipher := cryptox.NewLazyCipher(func() string { return c.EncryptionKey })

	gate := services.NewAccessGate(db, rm)
	vault := services.NewVaultService(db, rm, cipher, gate, logger)

	return &App{config: c, logger: logger, db: db, vault: vault}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.vault, app.config.SecretKey, app.config.AccessTokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
