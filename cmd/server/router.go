package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mriley/stash-api/internal/api"
	apiMiddleware "github.com/mriley/stash-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.accountService, app.tokenService, app.logger)
	itemHandler := api.NewItemHandler(app.itemService, app.logger)

	// Register routes
	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
	r.Post("/logout", authHandler.Logout)

	r.Route("/items", func(r chi.Router) {
		r.Post("/", itemHandler.CreateItem)
		r.Get("/", itemHandler.ListItems)
		r.Get("/{id}", itemHandler.GetItem)
		r.Put("/{id}", itemHandler.UpdateItem)
		r.Delete("/{id}", itemHandler.DeleteItem)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
