package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"padel-api/internal/config"
	"padel-api/internal/container"
	"padel-api/internal/handler"
	"padel-api/internal/middleware"
	"padel-api/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	container *container.Container
	server    *http.Server
	log       *logger.Logger
	mu        sync.Mutex
	closed    bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			r.container.Cleanup()
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		r.log.Info("HTTP server shutdown complete")
	}

	r.container.Cleanup()

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting padel-api server")

	// Create dependency injection container
	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Setup router
	router := setupRouter(c)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	resources := &Resources{
		container: c,
		server:    server,
		log:       log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()
	authService := c.Services.Auth

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(c)
	authHandler := handler.NewAuthHandler(authService, log)
	courtHandler := handler.NewCourtHandler(c.Services.Court, log)
	locationHandler := handler.NewLocationHandler(c.Services.Location, log)
	matchHandler := handler.NewMatchHandler(c.Services.Match, log)
	scoringHandler := handler.NewScoringHandler(c.Services.Scoring, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))

				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// Court routes
		r.Route("/courts", func(r chi.Router) {
			r.Get("/", courtHandler.List)
			r.Get("/nearby", courtHandler.Nearby)
			r.Get("/{id}", courtHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))
				r.Use(middleware.RequireAdmin(log))

				r.Post("/", courtHandler.Create)
				r.Put("/{id}", courtHandler.Update)
				r.Delete("/{id}", courtHandler.Delete)
			})
		})

		// Partner location routes
		r.Route("/locations", func(r chi.Router) {
			r.Get("/", locationHandler.List)
			r.Get("/search", locationHandler.SearchByCity)
			r.Get("/nearest", locationHandler.Nearest)
			r.Get("/{id}", locationHandler.Get)
		})

		// Match routes
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Get("/nearby", matchHandler.Nearby)
			r.Get("/{id}", matchHandler.Get)
			r.Get("/{id}/players", matchHandler.Players)
			r.Get("/{id}/scoring", scoringHandler.GetScore)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))

				r.Post("/", matchHandler.Create)
				r.Put("/{id}", matchHandler.Update)
				r.Delete("/{id}", matchHandler.Delete)
				r.Post("/{id}/join", matchHandler.Join)
				r.Post("/{id}/leave", matchHandler.Leave)

				// Scoring routes (creator/admin checks in the service)
				r.Route("/{id}/scoring", func(r chi.Router) {
					r.Post("/sets", scoringHandler.CreateSet)
					r.Post("/sets/{setId}/games", scoringHandler.CreateGame)
					r.Put("/sets/{setId}/games/{gameId}", scoringHandler.UpdateGameScore)
					r.Post("/sets/{setId}/complete", scoringHandler.CompleteSet)
					r.Post("/finish", scoringHandler.FinishMatch)
				})
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Endpoint not found"}`))
	})

	log.Info("Router configured successfully")
	return r
}
