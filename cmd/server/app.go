package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mriley/stash-api/internal/config"
	"github.com/mriley/stash-api/internal/platform/postgres"
	"github.com/mriley/stash-api/internal/service"
	"github.com/mriley/stash-api/internal/service/auth"
	"github.com/mriley/stash-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	accountStore store.AccountStore
	itemStore    store.ItemStore

	// Service interfaces
	tokenService     auth.TokenService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	accountService   service.AccountService
	itemService      service.ItemService
}

// newApplication creates a new application instance with all
// dependencies initialized. It accepts core dependencies like
// configuration, logger, and database connection that must be
// established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize the token service selected by configuration
	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"scheme", cfg.Auth.TokenScheme)

	// Initialize credential hashing
	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.accountStore = postgres.NewAccountStore(db, logger)
	app.itemStore = postgres.NewItemStore(db, logger)

	// Initialize services
	app.accountService = service.NewAccountService(
		app.accountStore,
		app.passwordHasher,
		app.passwordVerifier,
		db,
		logger,
	)
	app.itemService = service.NewItemService(app.itemStore, db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
