package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/family-gazette-api/internal/api"
	"github.com/family-gazette-api/internal/cache"
	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/database"
	"github.com/family-gazette-api/internal/repository"
	"github.com/family-gazette-api/internal/service"
	"github.com/family-gazette-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Family Gazette API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Article cache is optional
	var articles cache.ArticleCache
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, client, err := cache.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer client.Close()
		articles = redisCache
		log.Info().Dur("ttl", cfg.Redis.TTL).Msg("Article cache enabled")
	}

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, articles, cfg, log)

	// Start background job processor
	go services.Job.StartProcessor(context.Background())
	log.Info().Msg("Background job processor started")

	router := api.NewRouter(services, cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job processor after in-flight requests finish
	services.Job.StopProcessor()

	log.Info().Msg("Server exited gracefully")
}
