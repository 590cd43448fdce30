package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drowsyguard/internal/config"
	"drowsyguard/internal/handlers"
	"drowsyguard/internal/logger"
	"drowsyguard/internal/metrics"
	"drowsyguard/internal/repository/sqlite"
	"drowsyguard/internal/routes"
	"drowsyguard/internal/services"
	"drowsyguard/internal/services/ai"
	"drowsyguard/internal/services/alert"
	"drowsyguard/internal/services/storage"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	detector *ai.DetectorService
	manager  *services.Manager
	store    *handlers.SessionStore
	repos    routes.Repos
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	artifacts, err := storage.NewArtifactStore(cfg.OutputDirectory, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	detector := ai.NewDetectorService(cfg, log)
	alerts := alert.NewDispatcher(cfg.ActuatorAddr, cfg.AlertCooldown, log)
	m := metrics.New()

	manager := services.NewManager(cfg, detector, alerts, artifacts, m, log)

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		detector: detector,
		manager:  manager,
		store:    handlers.NewSessionStore(),
		repos: routes.Repos{
			Users:    sqlite.NewUserRepository(db),
			Sessions: sqlite.NewSessionRepository(db),
			Events:   sqlite.NewEventRepository(db),
		},
	}, nil
}

func (a *App) Run() error {
	router := routes.SetupRoutes(a.manager, a.repos, a.store, a.config, a.logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: router,
	}

	fmt.Printf("DrowsyGuard Server\n")
	fmt.Printf("URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("Model: %s (loaded: %v)\n", a.config.ModelPath, a.detector.Loaded())
	fmt.Printf("Actuator: %s\n", a.config.ActuatorAddr)
	fmt.Printf("Database: %s\n", a.config.DatabasePath)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		a.logger.Info("Shutting down on signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error: %v", err)
	}

	a.detector.Close()
	return a.db.Close()
}
