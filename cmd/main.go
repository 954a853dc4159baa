// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/harshitha-dev/event-booking-portal/internal/config"
	"github.com/harshitha-dev/event-booking-portal/internal/handler"
	"github.com/harshitha-dev/event-booking-portal/internal/logger"
	"github.com/harshitha-dev/event-booking-portal/internal/model"
	"github.com/harshitha-dev/event-booking-portal/internal/repository"
	"github.com/harshitha-dev/event-booking-portal/internal/service"
	"github.com/harshitha-dev/event-booking-portal/internal/storage"
	"github.com/harshitha-dev/event-booking-portal/internal/storage/memory"
	"github.com/harshitha-dev/event-booking-portal/internal/storage/postgres"
	"github.com/harshitha-dev/event-booking-portal/internal/storage/sqlite"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// ── 1. Open the storage medium ────────────────────────────────────────
	medium, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal("storage", zap.Error(err))
	}
	defer medium.Close()
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	// ── 2. Wire up layers ─────────────────────────────────────────────────
	store := repository.New(medium)
	if err := store.EnsureSeeded(ctx); err != nil {
		log.Fatal("seed store", zap.Error(err))
	}

	sessions := service.NewSessionManager()
	svc := service.New(store, sessions)
	h := handler.New(svc, sessions)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger(log))     // structured access log
	r.Use(handler.CORS)            // permissive CORS for demo
	r.Use(handler.Authenticate(sessions))

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.LoginUser)
			r.Post("/admin/login", h.LoginAdmin)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.With(handler.RequireRole(model.RoleUser)).Get("/", h.ListMyRegistrations)
			r.With(handler.RequireRole(model.RoleUser)).Post("/", h.BookEvent)
			r.With(handler.RequireAuth).Put("/{id}/status", h.UpdateStatus)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(handler.RequireRole(model.RoleAdmin))
			r.Get("/users", h.ListUsers)
			r.Get("/registrations", h.ListAllRegistrations)
		})
	})

	// Static HTML – serve the web/ directory at the root.
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// openStorage picks the persistence medium from configuration.
func openStorage(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		return postgres.New(ctx, postgres.ConfigFromEnv())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
