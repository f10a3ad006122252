// Package server wires the reference backend together: PostgreSQL with
// migrations, the S3-compatible store, the user and media services, and the
// HTTP API. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/feedmedia/internal/logging"
	"github.com/dmitrijs2005/feedmedia/internal/server/config"
	"github.com/dmitrijs2005/feedmedia/internal/server/httpapi"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/feedmedia/internal/server/services"
	"github.com/dmitrijs2005/feedmedia/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	if c.SeedUser != "" {
		u, created, err := us.SeedUser(ctx, c.SeedUser)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info(ctx, "seed user ready", "handle", u.Nickname, "created", created)
	}

	store, err := storage.NewS3Storage(ctx, storage.Options{
		AccessKey: c.S3RootUser,
		SecretKey: c.S3RootPassword,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
		Bucket:    c.S3Bucket,
		Expiry:    c.PresignExpiry,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		// The bucket may be provisioned out of band; presigning still works.
		logger.Warn(ctx, "bucket check failed", "bucket", c.S3Bucket, "error", err)
	}

	ms := services.NewMediaService(db, rm, store)
	h := httpapi.NewHandler(us, ms, logger, c.SecretKey)

	return &App{config: c, logger: logger, db: db, handler: h.Routes()}, nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
			cancelFunc()
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "HTTP server shutdown failed", "error", err)
		return
	}
	app.logger.Info(shutdownCtx, "HTTP server stopped")
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close failed", "error", err)
		}
	}
}
