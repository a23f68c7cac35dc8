// Package main provides the entrypoint for the GeoSense badge worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/badge"
	"github.com/geosense/geosense/internal/config"
	"github.com/geosense/geosense/internal/database"
	"github.com/geosense/geosense/internal/user"
	"github.com/geosense/geosense/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// sweepInterval paces the fallback evaluation loop when Pub/Sub is not
// configured.
const sweepInterval = 5 * time.Minute

func main() {
	const serviceName = "geosense-worker"

	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting GeoSense worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stores: PostgreSQL when configured, in-memory otherwise. An
	// in-memory worker only makes sense for local runs; it sees no API
	// traffic.
	var (
		userRepo  user.Repository
		badgeRepo badge.Repository
	)
	if cfg.HasDatabase() {
		pool, err := database.Connect(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		userRepo = user.NewPostgresRepository(pool)
		badgeRepo = badge.NewPostgresRepository(pool)
		log.Info().Msg("database connected")
	} else {
		userRepo = user.NewInMemoryRepository()
		badgeRepo = badge.NewInMemoryRepository()
		log.Warn().Msg("DATABASE_URL not set, running on in-memory stores")
	}

	badgeJob := worker.NewBadgeJob(worker.BadgeJobConfig{
		Users:  userRepo,
		Badges: badgeRepo,
		Logger: log,
	})

	// Health check server for the container runtime
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Job intake: Pub/Sub when configured, a periodic sweep otherwise
	if cfg.HasEvents() {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.BadgeJobsSubscription,
			BadgeJob:         badgeJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize pubsub handler")
		}
		defer func() {
			if closeErr := handler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub handler")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
				cancel()
			}
		}()
	} else {
		log.Warn().
			Dur("interval", sweepInterval).
			Msg("PUBSUB_PROJECT_ID not set, sweeping on a timer")

		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := badgeJob.Run(ctx); err != nil {
						log.Error().Err(err).Msg("badge sweep failed")
					}
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
