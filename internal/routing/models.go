// Package routing plans routes between coordinates and scores their
// environmental cost.
package routing

import (
	"errors"
	"fmt"
	"time"
)

// Predefined errors for routing operations.
var (
	// ErrProviderUnavailable indicates the live routing provider could not
	// answer. Callers fall back to the synthetic provider.
	ErrProviderUnavailable = errors.New("routing provider unavailable")

	// ErrRouteUnavailable indicates no route exists for the request.
	ErrRouteUnavailable = errors.New("no route available between these points")

	// ErrInvalidCoordinates indicates coordinates outside valid bounds.
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// RouteType selects the optimisation goal for a planned route.
type RouteType string

const (
	// RouteEco favours lower emissions over speed.
	RouteEco RouteType = "eco"

	// RouteFastest favours travel time.
	RouteFastest RouteType = "fastest"
)

// Valid reports whether the route type is a known value.
func (rt RouteType) Valid() bool {
	return rt == RouteEco || rt == RouteFastest
}

// Waypoint is a single coordinate along a route.
type Waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Request describes a route to plan.
type Request struct {
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64
	Type     RouteType
}

// Summary is a planned route.
type Summary struct {
	// LengthMeters is the route length in meters.
	LengthMeters int `json:"length_meters"`

	// TravelTimeSeconds is the expected travel time including traffic.
	TravelTimeSeconds int `json:"travel_time_seconds"`

	// TrafficDelaySeconds is the share of travel time caused by traffic.
	TrafficDelaySeconds int `json:"traffic_delay_seconds"`

	// DepartureTime is when the route starts.
	DepartureTime time.Time `json:"departure_time"`

	// ArrivalTime is when the route ends.
	ArrivalTime time.Time `json:"arrival_time"`

	// Waypoints traces the route path.
	Waypoints []Waypoint `json:"waypoints"`
}

// LengthKm returns the route length in kilometers.
func (s Summary) LengthKm() float64 {
	return float64(s.LengthMeters) / 1000.0
}

// Error provides structured error information for routing operations.
type Error struct {
	// Provider is the provider that generated the error.
	Provider string

	// Code is a machine-readable error code.
	Code string

	// Message is a human-readable error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Provider, e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}
