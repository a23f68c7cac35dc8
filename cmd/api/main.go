// Package main provides the entrypoint for the GeoSense API server.
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

	"github.com/geosense/geosense/internal/ambient"
	"github.com/geosense/geosense/internal/api"
	"github.com/geosense/geosense/internal/api/handler"
	"github.com/geosense/geosense/internal/api/middleware"
	"github.com/geosense/geosense/internal/badge"
	"github.com/geosense/geosense/internal/chat"
	"github.com/geosense/geosense/internal/community"
	"github.com/geosense/geosense/internal/config"
	"github.com/geosense/geosense/internal/database"
	"github.com/geosense/geosense/internal/events"
	"github.com/geosense/geosense/internal/insight"
	"github.com/geosense/geosense/internal/llm"
	"github.com/geosense/geosense/internal/llm/anthropic"
	"github.com/geosense/geosense/internal/poi"
	poitomtom "github.com/geosense/geosense/internal/poi/tomtom"
	"github.com/geosense/geosense/internal/provider/resilience"
	"github.com/geosense/geosense/internal/rewards"
	"github.com/geosense/geosense/internal/routing"
	routingtomtom "github.com/geosense/geosense/internal/routing/tomtom"
	"github.com/geosense/geosense/internal/telemetry"
	"github.com/geosense/geosense/internal/traffic"
	"github.com/geosense/geosense/internal/trips"
	"github.com/geosense/geosense/internal/user"
	"github.com/geosense/geosense/internal/zones"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// providerTimeout bounds a single live provider call; failures fall through
// to the deterministic fallbacks.
const providerTimeout = 5 * time.Second

func main() {
	const serviceName = "geosense-api"

	_ = godotenv.Load()
	cfg := config.FromEnv()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting GeoSense API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1)
	}

	readinessChecks := map[string]handler.ReadinessChecker{}

	// Stores: PostgreSQL when configured, in-memory otherwise
	var (
		userRepo  user.Repository
		badgeRepo badge.Repository
		tripRepo  trips.Repository
		postRepo  community.Repository
	)
	if cfg.HasDatabase() {
		pool, err := database.Connect(ctx, cfg.DatabaseURL, database.DefaultPoolConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		userRepo = user.NewPostgresRepository(pool)
		badgeRepo = badge.NewPostgresRepository(pool)
		tripRepo = trips.NewPostgresRepository(pool)
		postRepo = community.NewPostgresRepository(pool)
		readinessChecks["database"] = pool.Ping
		log.Info().Msg("database connected")
	} else {
		userRepo = user.NewInMemoryRepository()
		badgeRepo = badge.NewInMemoryRepository()
		tripRepo = trips.NewInMemoryRepository()
		postRepo = community.NewInMemoryRepository()
		log.Warn().Msg("DATABASE_URL not set, running on in-memory stores")
	}

	// Live providers, present only when configured. Every provider has a
	// deterministic fallback, so missing keys degrade rather than fail.
	registry := resilience.NewRegistry()
	var poiProvider poi.Provider
	var routeProvider routing.Provider
	if cfg.HasTomTom() {
		searchHTTP := resilience.NewClient(resilience.SingleAttemptConfig(poitomtom.ProviderName, providerTimeout))
		registry.Register(poitomtom.ProviderName, searchHTTP)
		poiProvider = poitomtom.NewClient(poitomtom.ClientConfig{
			APIKey:     cfg.TomTomAPIKey,
			HTTPClient: searchHTTP,
		})

		routeHTTP := resilience.NewClient(resilience.SingleAttemptConfig(routingtomtom.ProviderName, providerTimeout))
		registry.Register(routingtomtom.ProviderName, routeHTTP)
		routeProvider = routingtomtom.NewClient(routingtomtom.ClientConfig{
			APIKey:     cfg.TomTomAPIKey,
			HTTPClient: routeHTTP,
		})

		log.Info().Msg("TomTom providers initialized")
	} else {
		log.Warn().Msg("TOMTOM_API_KEY not set, serving synthetic search and routes")
	}
	readinessChecks["providers"] = func(context.Context) error {
		for _, h := range registry.GetAllHealth() {
			if h.IsUnhealthy() {
				return fmt.Errorf("%s circuit open", h.Name)
			}
		}
		return nil
	}

	var generator llm.Generator
	if cfg.HasLLM() {
		generator = anthropic.NewClient(anthropic.ClientConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
		})
		log.Info().Msg("Anthropic client initialized")
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set, serving template insights and rule replies")
	}

	var publisher events.Publisher
	if cfg.HasEvents() {
		pub, err := events.NewPubSubPublisher(ctx, events.PubSubPublisherConfig{
			ProjectID: cfg.PubSubProjectID,
			Topic:     cfg.TripEventsTopic,
			Logger:    log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize event publisher")
		}
		defer func() {
			if closeErr := pub.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close event publisher")
			}
		}()
		publisher = pub
		log.Info().
			Str("topic", cfg.TripEventsTopic).
			Msg("event publisher initialized")
	}

	// Domain services
	userService := user.NewService(user.ServiceConfig{
		Repository: userRepo,
		Badges:     badgeRepo,
		Logger:     log,
	})
	poiService := poi.NewService(poi.ServiceConfig{
		Provider: poiProvider,
		Logger:   log,
	})
	routingService := routing.NewService(routing.ServiceConfig{
		Provider: routeProvider,
		Logger:   log,
	})
	rewardsService := rewards.NewService(rewards.ServiceConfig{
		Users:     userRepo,
		Trips:     tripRepo,
		Publisher: publisher,
		Logger:    log,
	})
	communityService := community.NewService(community.ServiceConfig{
		Repository: postRepo,
		Logger:     log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		ReadinessChecks:  readinessChecks,
		UserService:      userService,
		POIService:       poiService,
		RoutingService:   routingService,
		RewardsService:   rewardsService,
		CommunityService: communityService,
		Classifier:       zones.NewClassifier(zones.ClassifierConfig{Logger: log}),
		TrafficEstimator: traffic.NewEstimator(nil),
		AmbientSampler:   ambient.NewSampler(nil),
		InsightComposer: insight.NewComposer(insight.ComposerConfig{
			Generator: generator,
			Logger:    log,
		}),
		ChatResponder: chat.NewResponder(chat.ResponderConfig{
			Generator: generator,
			Logger:    log,
		}),
		DefaultLat: cfg.DefaultLat,
		DefaultLon: cfg.DefaultLon,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
