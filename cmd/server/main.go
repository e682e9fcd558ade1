package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/local-avatar-api/internal/api"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/limiter"
	"github.com/local-avatar-api/internal/repository"
	"github.com/local-avatar-api/internal/service"
	"github.com/local-avatar-api/internal/storage"
	"github.com/local-avatar-api/pkg/logger"
	"golang.org/x/time/rate"
)

func main() {
	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	// Initialize logger
	log := logger.FromEnv()
	log.Info().Msg("Starting local avatar API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.New(cfg.Log.Level, cfg.Log.Env)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize attachment URL storage
	urls, err := storage.NewURLBuilder(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	// Initialize services
	services := service.NewServices(repos, urls, cfg, log)

	// Per-IP rate limiting, disabled with RATE_LIMIT_RPS=0
	var rl *limiter.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		rl = limiter.New(ctx, rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst, log)
	}

	// Initialize router
	router := api.NewRouter(services, cfg, log, rl)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the rate limiter sweeper
	stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
