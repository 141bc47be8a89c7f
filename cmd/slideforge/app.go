package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"slideforge/internal/db"
	"slideforge/internal/googleapi"
	"slideforge/internal/handlers"
	"slideforge/internal/service/auth"
	"slideforge/internal/service/generation"
	"slideforge/internal/service/token"

	"slideforge/internal/logger"
	"slideforge/internal/repository/postgres"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize Google API client, endpoints may be overridden in config
	google := googleapi.NewClient(log)
	if c.DriveBaseURL != "" {
		google.DriveBaseURL = c.DriveBaseURL
	}
	if c.SlidesBaseURL != "" {
		google.SlidesBaseURL = c.SlidesBaseURL
	}
	if c.OAuthBaseURL != "" {
		google.OAuthBaseURL = c.OAuthBaseURL
	}

	// Initialize services
	authService, err := auth.NewService(auth.Config{SecretKey: c.SecretKey}, storage.User(), storage.Refresh())
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	credentialManager, err := token.NewManager(token.Config{Logger: log}, storage.Credential(), google)
	if err != nil {
		return nil, fmt.Errorf("error while creating credential manager. Err: %w", err)
	}
	generator, err := generation.NewService(
		generation.Config{TemplateCapacity: c.TemplateCapacity, Logger: log},
		credentialManager,
		google,
		storage.Record(),
	)
	if err != nil {
		return nil, fmt.Errorf("error while creating generation service. Err: %w", err)
	}

	mux := handlers.NewRouter(
		authService,
		credentialManager,
		generator,
		storage.Record(),
		c.TemplateID,
		log,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
