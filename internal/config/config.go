// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Default map centre when no coordinates are configured (Pune, India).
const (
	DefaultLat = 18.5204
	DefaultLon = 73.8567
)

// Config holds the runtime configuration for the API and worker binaries.
// It is built once in main; business logic never reads env vars.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// Environment is the deployment environment (development, production).
	Environment string

	// DatabaseURL is the PostgreSQL connection string. Empty means the
	// service runs on in-memory stores.
	DatabaseURL string

	// TomTomAPIKey enables the live POI search and routing providers.
	TomTomAPIKey string

	// AnthropicAPIKey enables LLM insights and chat replies.
	AnthropicAPIKey string

	// AnthropicModel overrides the default model ID.
	AnthropicModel string

	// PubSubProjectID is the GCP project hosting the trip events topic.
	PubSubProjectID string

	// TripEventsTopic is the topic trip completion events are published to.
	TripEventsTopic string

	// BadgeJobsSubscription is the subscription the worker consumes.
	BadgeJobsSubscription string

	// OTELEnabled turns on trace and metric export.
	OTELEnabled bool

	// OTLPEndpoint is the OTLP gRPC collector endpoint.
	OTLPEndpoint string

	// DefaultLat and DefaultLon anchor location analysis when a request
	// omits coordinates.
	DefaultLat float64
	DefaultLon float64
}

// FromEnv builds a Config from the process environment.
func FromEnv() Config {
	return Config{
		Port:                  getenv("APP_PORT", "8080"),
		Environment:           getenv("APP_ENV", "development"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		TomTomAPIKey:          os.Getenv("TOMTOM_API_KEY"),
		AnthropicAPIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:        os.Getenv("ANTHROPIC_MODEL"),
		PubSubProjectID:       os.Getenv("PUBSUB_PROJECT_ID"),
		TripEventsTopic:       getenv("TRIP_EVENTS_TOPIC", "trip-events"),
		BadgeJobsSubscription: getenv("BADGE_JOBS_SUBSCRIPTION", "badge-jobs"),
		OTELEnabled:           os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:          getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		DefaultLat:            getenvFloat("DEFAULT_LAT", DefaultLat),
		DefaultLon:            getenvFloat("DEFAULT_LON", DefaultLon),
	}
}

// HasDatabase reports whether a PostgreSQL store is configured.
func (c Config) HasDatabase() bool { return c.DatabaseURL != "" }

// HasTomTom reports whether the live POI and routing providers are
// configured.
func (c Config) HasTomTom() bool { return c.TomTomAPIKey != "" }

// HasLLM reports whether language model generation is configured.
func (c Config) HasLLM() bool { return c.AnthropicAPIKey != "" }

// HasEvents reports whether Pub/Sub event publishing is configured.
func (c Config) HasEvents() bool { return c.PubSubProjectID != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
