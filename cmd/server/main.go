// @title           PPF Order API
// @version         1.0.0
// @description     Backend API for paint protection film orders. Customers submit orders with an optional vehicle photo; a signed-in admin reviews, updates and deletes them.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin access token.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"ppf-order-backend/internal/auth"
	"ppf-order-backend/internal/config"
	"ppf-order-backend/internal/database"
	"ppf-order-backend/internal/handlers"
	"ppf-order-backend/internal/logging"
	"ppf-order-backend/internal/metrics"
	"ppf-order-backend/internal/services"
	"ppf-order-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	photos := supabase.NewPhotoStore(cfg.SupabaseURL, cfg.StorageKey(), cfg.SupabaseStorageBucket, m)
	gate := auth.NewGate(supabaseClient, cfg.SupabaseJWTSecret)

	events, unsubscribe := gate.Subscribe()
	go func() {
		for e := range events {
			log.WithField("event", e.Type).Info("admin session changed")
		}
	}()

	repo, closeRepo := openRepository(cfg)

	orderService := services.NewOrderService(repo, photos, m)

	router := handlers.NewRouter(handlers.RouterDeps{
		Orders:   handlers.NewOrdersHandler(orderService, cfg.MaxPhotoBytes),
		Auth:     handlers.NewAuthHandler(gate),
		Sessions: gate,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"bucket":      cfg.SupabaseStorageBucket,
		}).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	failed := false
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Failed to start server")
			failed = true
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("graceful shutdown failed")
		}
		cancel()
	}

	unsubscribe()
	if err := closeRepo(); err != nil {
		log.WithError(err).Warn("failed to close order repository")
	}
	log.Info("Server stopped")
	if failed {
		os.Exit(1)
	}
}

const shutdownTimeout = 10 * time.Second

// openRepository migrates and connects to Postgres when DATABASE_URL is set
// and falls back to an in-process store otherwise. The returned func
// releases the repository's connections.
func openRepository(cfg *config.Config) (services.OrderRepository, func() error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, orders are kept in memory and lost on restart")
		return database.NewMemoryRepository(), func() error { return nil }
	}

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := migrator.Close(); err != nil {
		log.WithError(err).Warn("failed to close migrator connection")
	}
	log.Info("Migrations completed successfully")

	repo, err := database.NewPostgresRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return repo, repo.Close
}
