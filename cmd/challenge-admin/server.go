package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/challenge-asso/challenge-admin/internal/shell/api"
	authmw "github.com/challenge-asso/challenge-admin/internal/shell/api/middleware"
	"github.com/challenge-asso/challenge-admin/internal/shell/hyperion"
	"github.com/challenge-asso/challenge-admin/internal/shell/store"
	"github.com/challenge-asso/challenge-admin/internal/shell/workers"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitHTTPServerError = 3
)

// =============================================================================
// Server
// =============================================================================

// Server represents the dashboard application server.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store
	syncer     *workers.Syncer
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      errors.New("auth.jwt_secret must be set"),
			ExitCode: ExitConfigError,
		}
	}

	// Connect to database
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}

	// Create Hyperion client
	var gateway hyperion.Client
	if cfg.Hyperion.Enabled {
		gateway = hyperion.NewHTTPClient(hyperion.Config{
			BaseURL:           cfg.Hyperion.BaseURL,
			Token:             cfg.Hyperion.Token,
			Timeout:           cfg.Hyperion.Timeout,
			RequestsPerSecond: cfg.Hyperion.RequestsPerSecond,
		})
		logger.Info("hyperion upstream enabled", "base_url", cfg.Hyperion.BaseURL)
	} else {
		gateway = hyperion.NewNoOpClient()
		logger.Info("hyperion upstream disabled, running on local catalog only")
	}

	// Create sync worker
	var syncer *workers.Syncer
	if cfg.Sync.Enabled {
		syncer = workers.NewSyncer(s, gateway, workers.SyncerConfig{
			Interval:      cfg.Sync.Interval,
			SchoolTimeout: cfg.Sync.SchoolTimeout,
		}, logger)
	} else {
		logger.Info("background sync disabled")
	}

	issuer := authmw.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// The handler takes the syncer as an interface; a nil *Syncer must
	// stay a nil interface or the manual sync endpoint would panic.
	var trigger api.SyncTrigger
	if syncer != nil {
		trigger = syncer
	}
	handler := api.NewHandler(s, gateway, issuer, trigger, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      s,
		syncer:     syncer,
		logger:     logger,
	}, nil
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start sync worker in background
	if s.syncer != nil {
		s.syncer.Start()
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", s.config.Server.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	if s.syncer != nil {
		s.syncer.Stop()
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
