package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/fireme/internal/devapi/http"
	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the development API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	service *service.Service
	tokens  *service.TokenService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fireme-devapi",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		service: service.New(),
	}

	if err := app.initTokens(); err != nil {
		return nil, err
	}
	if err := app.seed(context.Background()); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("dev api starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"rotate_refresh", app.cfg.RotateRefresh,
		"access_ttl", app.cfg.AccessTTL,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down dev api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		return err
	}

	app.logger.Info("dev api stopped")
	return nil
}

func (app *Application) initTokens() error {
	key := []byte(app.cfg.SigningKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("generate signing key: %w", err)
		}
		app.logger.Warn("DEVAPI_SIGNING_KEY not set, tokens will not survive a restart")
	}

	tokens, err := service.NewTokenService(key, app.cfg.AccessTTL, app.cfg.RefreshTTL, app.cfg.RotateRefresh)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokens = tokens
	return nil
}

// seed registers the configured account so a fresh server can be logged
// into straight away.
func (app *Application) seed(ctx context.Context) error {
	if app.cfg.SeedUsername == "" {
		return nil
	}
	id, err := app.service.Register(ctx, apisdk.RegisterRequest{
		Username: app.cfg.SeedUsername,
		Password: app.cfg.SeedPassword,
	})
	if err != nil {
		return fmt.Errorf("seed user %q: %w", app.cfg.SeedUsername, err)
	}
	app.logger.Info("seeded user", "user_id", id.ID, "username", id.Username)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.service, app.tokens, BuildVersion, app.logger)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
