package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusboard/campusboard/internal/identity"
	"github.com/campusboard/campusboard/internal/metrics"
	httpapi "github.com/campusboard/campusboard/internal/oauth/http"
	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/internal/oauth/store/drivers/sqlite"
	"github.com/campusboard/campusboard/pkg/slogx"
)

// BuildVersion is stamped at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the OAuth authorization server with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	provider identity.Provider
	metrics  *metrics.Metrics

	authorizeService    *service.AuthorizeService
	tokenService        *service.TokenService
	clientService       *service.ClientService
	housekeepingService *service.Housekeeping

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "oauth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initIdentity(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("oauth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down oauth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("oauth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initIdentity wires the end-user session validator. The host application
// owns authentication; we only check its session credentials.
func (app *Application) initIdentity() error {
	switch app.cfg.IdentityMode {
	case "jwt":
		if app.cfg.SessionSecret == "" {
			return fmt.Errorf("OAUTH_SESSION_SECRET is required in jwt identity mode")
		}
		app.provider = identity.NewJWTProvider([]byte(app.cfg.SessionSecret), app.cfg.SessionIssuer)
	case "remote":
		if app.cfg.IdentityBaseURL == "" {
			return fmt.Errorf("OAUTH_IDENTITY_BASE_URL is required in remote identity mode")
		}
		app.provider = identity.NewRemoteProvider(app.cfg.IdentityBaseURL, nil)
	default:
		return fmt.Errorf("unknown identity mode %q (want jwt or remote)", app.cfg.IdentityMode)
	}

	app.logger.Info("identity provider configured", "mode", app.cfg.IdentityMode)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authorizeService = service.NewAuthorizeService(app.db, app.metrics, app.cfg.CodeTTL)
	app.tokenService = service.NewTokenService(app.db, app.metrics, app.cfg.AccessTokenTTL)
	app.clientService = service.NewClientService(app.db)
	app.housekeepingService = service.NewHousekeeping(app.db, app.logger, app.cfg.HousekeepingInterval)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.db,
		app.provider,
		app.metrics,
		app.cfg.LoginURL,
		BuildVersion,
		app.logger,
	)
	router.AuthorizeService = app.authorizeService
	router.TokenService = app.tokenService
	router.ClientService = app.clientService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
