package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tekmux/gatelab/internal/api"
	apimw "github.com/tekmux/gatelab/internal/api/middleware"
	"github.com/tekmux/gatelab/internal/config"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/platform/metrics"
	"github.com/tekmux/gatelab/internal/redact"
	"github.com/tekmux/gatelab/internal/service/auth"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sandbox over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// An invalid level has already been reported and replaced by info.
			log, _ := logger.Setup(cfg.Server)
			log.Info("server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"max_sessions", cfg.Sandbox.MaxSessions)

			app, err := newApplication(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config.yaml (default: ./config.yaml or /etc/gatelab/config.yaml)")
	return cmd
}

// application holds the shared dependencies of the HTTP service.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	sandbox *localSandbox
	tokens  auth.TokenService
	metrics *metrics.Recorder
}

func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: log}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Info("session token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.sandbox, err = newLocalSandbox(cfg.Sandbox, log)
	if err != nil {
		return nil, err
	}

	app.metrics = metrics.NewRecorder(app.sandbox.sessions.Len)
	app.sandbox.emitter.RegisterHandler(app.metrics)

	log.Info("application initialized successfully")
	return app, nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Sandbox:       app.sandbox.service,
		Tokens:        app.tokens,
		TokenLifetime: app.config.Auth.TokenLifetime(),
		Metrics:       app.metrics,
		RateLimiter:   apimw.NewRateLimiter(app.config.RateLimit.RequestsPerSecond, app.config.RateLimit.Burst),
		LiveSessions:  app.sandbox.sessions.Len,
		Logger:        app.logger,
	})
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// within the configured timeout and closes the session store.
func (app *application) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", strconv.Itoa(app.config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		_ = app.sandbox.Close()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return app.serve(ctx, ln)
}

func (app *application) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           app.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("starting server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout())
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
		}
		if err := app.sandbox.Close(); err != nil {
			errs = append(errs, fmt.Errorf("session store close failed: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error("server stopped with error", "error", redact.Error(err))
		return err
	}
	app.logger.Info("server shutdown completed")
	return nil
}
