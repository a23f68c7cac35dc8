package poi

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider searches points of interest near a coordinate.
type Provider interface {
	// Search returns up to limit points matching query near (lat, lon).
	Search(ctx context.Context, query string, lat, lon float64, limit int) ([]Result, error)
}

// ServiceConfig holds configuration for the POI service.
type ServiceConfig struct {
	// Provider is the live POI provider. Optional; when nil every search
	// is served by the mock provider.
	Provider Provider

	// Fallback serves searches when the live provider fails. Defaults to
	// the mock provider.
	Fallback Provider

	// Logger for POI operations.
	Logger zerolog.Logger
}

// Service resolves POI searches, degrading to synthetic results when the
// live provider is absent or failing.
type Service struct {
	provider Provider
	fallback Provider
	logger   zerolog.Logger
}

// NewService creates a new POI service.
func NewService(cfg ServiceConfig) *Service {
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = NewMockProvider(nil)
	}

	return &Service{
		provider: cfg.Provider,
		fallback: fallback,
		logger:   cfg.Logger,
	}
}

// Search returns points of interest for the query near the coordinate. A
// live provider failure is logged and absorbed; the caller always gets a
// usable result set.
func (s *Service) Search(ctx context.Context, query string, lat, lon float64, limit int) ([]Result, error) {
	if s.provider != nil {
		results, err := s.provider.Search(ctx, query, lat, lon, limit)
		if err == nil && len(results) > 0 {
			return results, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).
				Str("query", query).
				Msg("poi provider failed, using synthetic results")
		}
	}

	return s.fallback.Search(ctx, query, lat, lon, limit)
}
