package routing

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Provider plans a route for a request.
type Provider interface {
	Plan(ctx context.Context, req Request) (*Summary, error)
}

// ServiceConfig holds configuration for the routing service.
type ServiceConfig struct {
	// Provider is the live routing provider. Optional; when nil every
	// request is served by the synthetic provider.
	Provider Provider

	// Fallback serves requests when the live provider fails. Defaults to
	// the synthetic provider.
	Fallback Provider

	// Logger for routing operations.
	Logger zerolog.Logger
}

// Service plans routes, degrading to synthetic summaries when the live
// provider is absent or failing.
type Service struct {
	provider Provider
	fallback Provider
	logger   zerolog.Logger
}

// NewService creates a new routing service.
func NewService(cfg ServiceConfig) *Service {
	fallback := cfg.Fallback
	if fallback == nil {
		fallback = NewSyntheticProvider(nil)
	}

	return &Service{
		provider: cfg.Provider,
		fallback: fallback,
		logger:   cfg.Logger,
	}
}

// Plan returns a route summary for the request. Invalid input errors are
// returned as-is; live provider failures are logged and absorbed by the
// synthetic fallback.
func (s *Service) Plan(ctx context.Context, req Request) (*Summary, error) {
	if !req.Type.Valid() {
		req.Type = RouteEco
	}

	if s.provider != nil {
		summary, err := s.provider.Plan(ctx, req)
		if err == nil {
			return summary, nil
		}
		if errors.Is(err, ErrInvalidCoordinates) || errors.Is(err, ErrRouteUnavailable) {
			return nil, err
		}

		s.logger.Warn().Err(err).
			Str("route_type", string(req.Type)).
			Msg("routing provider failed, using synthetic route")
	}

	return s.fallback.Plan(ctx, req)
}
