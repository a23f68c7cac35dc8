// Package resilience wraps outbound collaborator calls with circuit
// breakers, timeouts, and optional retry.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Trip thresholds for the default breaker.
const (
	tripMinRequests  = 5
	tripFailureRatio = 0.5
)

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs and state queries.
	Name string

	// MaxRequests allowed through while half-open (default 1).
	MaxRequests uint32

	// Interval resets the closed-state counters when non-zero.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing (default 60s).
	Timeout time.Duration

	// ReadyToTrip decides when the breaker opens. Nil uses
	// DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange observes breaker transitions.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns the breaker settings shared by all
// provider clients.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker once at least 5 calls have been made
// and half of them failed.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < tripMinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= tripFailureRatio
}

// NewCircuitBreaker builds a gobreaker instance from the config.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.ReadyToTrip,
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}
