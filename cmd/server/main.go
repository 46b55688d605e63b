// Package main implements the entry point for the stash-api server,
// which exposes account registration/sign-in and CRUD over items
// backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/mriley/stash-api/internal/config"
	"github.com/mriley/stash-api/internal/platform/logger"
)

// main is the entry point for the stash-api server.
// It initializes configuration, sets up logging, establishes the
// database connection, runs migrations, injects dependencies, and
// starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run wires the application together and blocks until shutdown.
func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"token_scheme", cfg.Auth.TokenScheme)

	// Establish the process-wide database pool
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Bring the schema up to date before serving traffic
	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Build the application with all dependencies injected
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
