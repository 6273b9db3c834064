// Mentor Labs - persona-conditioned AI mentor chat server
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akarpov/mentor-labs/internal/api"
	"github.com/akarpov/mentor-labs/internal/chat"
	"github.com/akarpov/mentor-labs/internal/config"
	"github.com/akarpov/mentor-labs/internal/identity"
	"github.com/akarpov/mentor-labs/internal/mentor"
	"github.com/akarpov/mentor-labs/internal/middleware"
	"github.com/akarpov/mentor-labs/internal/progress"
	"github.com/akarpov/mentor-labs/internal/relay"
	"github.com/akarpov/mentor-labs/internal/store"
	"github.com/akarpov/mentor-labs/internal/stream"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func newRepository(cfg *config.Config) (store.Repository, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		return store.NewRedis(cfg.RedisAddr)
	case config.StoreBackendSQLite:
		return store.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "store", cfg.StoreBackend, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := newRepository(cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Store connected")

	// Initialize services.
	registry := mentor.NewRegistry()
	profiles := progress.NewStore(repo, logger)
	relayClient := relay.NewClient(relay.Config{
		URL:        cfg.Upstream.URL,
		APIKey:     cfg.Upstream.APIKey,
		IdentityID: cfg.Upstream.IdentityID,
		AgentID:    cfg.Upstream.AgentID,
		Timeout:    cfg.Upstream.Timeout,
	}, logger)
	emitter := stream.NewEmitter(cfg.Stream.FrameDelay)

	// Initialize handlers.
	baseHandler := api.NewHandler(registry, profiles, logger)
	healthHandler := api.NewHealthHandler(repo)
	chatHandler := chat.NewHandler(relayClient, emitter, cfg.Stream.MaxRequestBodySize, logger)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(cfg.IsDevelopment()))

	healthHandler.RegisterHealth(r)
	baseHandler.RegisterRoutes(r)
	chatHandler.RegisterRoutes(r)

	// Create server.
	// Note: SSE responses need long-lived writes, so no WriteTimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
