package main

import (
	"fmt"
	"log/slog"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/config"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/database"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/lifecycle"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/routes"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/server"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/storage"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/logging"
)

// Runtime owns the infrastructure subsystems and their lifecycle.
type Runtime struct {
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle *lifecycle.Coordinator
	Database  database.System
	Storage   storage.System
	Server    server.System
}

// NewRuntime builds the infrastructure, domain systems, and HTTP
// pipeline from the finalized configuration.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	logger := logging.New(&cfg.Logging)
	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	blobs, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}

	domain := buildDomain(cfg, db, blobs, logger)

	routeSys := routes.New(logger)
	registerRoutes(routeSys, domain, lc)
	handler := applyMiddleware(routeSys.Build(), cfg, logger)

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Lifecycle: lc,
		Database:  db,
		Storage:   blobs,
		Server:    server.New(&cfg.Server, handler, logger),
	}, nil
}

// Start brings up the subsystems in dependency order and marks the
// coordinator ready.
func (rt *Runtime) Start() error {
	rt.Logger.Info("starting service")

	if err := rt.Database.Start(rt.Lifecycle); err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	if err := rt.Storage.Start(rt.Lifecycle); err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	if err := rt.Server.Start(rt.Lifecycle); err != nil {
		return fmt.Errorf("server start: %w", err)
	}

	rt.Lifecycle.WaitForStartup()
	rt.Logger.Info("service started")
	return nil
}

// Shutdown stops all subsystems within the configured timeout.
func (rt *Runtime) Shutdown() error {
	rt.Logger.Info("initiating shutdown")
	return rt.Lifecycle.Shutdown(rt.Config.Server.ShutdownTimeoutDuration())
}
