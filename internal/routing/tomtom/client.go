// Package tomtom provides a routing client for the TomTom Routing API.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geosense/geosense/internal/provider/resilience"
	"github.com/geosense/geosense/internal/routing"
)

const (
	// DefaultBaseURL is the base URL for the TomTom Routing API.
	DefaultBaseURL = "https://api.tomtom.com"

	// ProviderName identifies this provider.
	ProviderName = "tomtom-routing"

	// noRouteFoundCode is the detailed error code TomTom returns when the
	// endpoints cannot be connected.
	noRouteFoundCode = "NO_ROUTE_FOUND"
)

// ClientConfig holds configuration for the TomTom routing client.
type ClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a single-attempt resilient client is created; route planning
	// sits on the request path, so a failure falls through to the
	// synthetic route instead of retrying.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a TomTom Routing API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new TomTom routing client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		httpClient = resilience.NewClient(resilience.SingleAttemptConfig(ProviderName, timeout))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// API response types (from TomTom Routing API).

type routeResponse struct {
	Routes []routeData `json:"routes"`
}

type routeData struct {
	Summary routeSummary `json:"summary"`
	Legs    []routeLeg   `json:"legs"`
}

type routeSummary struct {
	LengthInMeters        int    `json:"lengthInMeters"`
	TravelTimeInSeconds   int    `json:"travelTimeInSeconds"`
	TrafficDelayInSeconds int    `json:"trafficDelayInSeconds"`
	DepartureTime         string `json:"departureTime"`
	ArrivalTime           string `json:"arrivalTime"`
}

type routeLeg struct {
	Points []routePoint `json:"points"`
}

type routePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorResponse struct {
	DetailedError detailedError `json:"detailedError"`
}

type detailedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Plan requests a calculated route from the TomTom routing endpoint.
func (c *Client) Plan(ctx context.Context, req routing.Request) (*routing.Summary, error) {
	routeType := "fastest"
	if req.Type == routing.RouteEco {
		routeType = "eco"
	}

	locations := fmt.Sprintf("%f,%f:%f,%f", req.StartLat, req.StartLon, req.EndLat, req.EndLon)
	u := fmt.Sprintf("%s/routing/1/calculateRoute/%s/json?key=%s&routeType=%s&traffic=true",
		c.baseURL, url.PathEscape(locations), url.QueryEscape(c.apiKey), routeType)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "request_creation_failed",
			Message:  "failed to create route request",
			Err:      err,
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "request_failed",
			Message:  "route request failed",
			Err:      fmt.Errorf("%w: %w", routing.ErrProviderUnavailable, err),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		// A 400 surfaces as no-route only when TomTom says so; any other
		// rejection degrades to the synthetic fallback.
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.DetailedError.Code == noRouteFoundCode {
			return nil, &routing.Error{
				Provider: ProviderName,
				Code:     "no_route_found",
				Message:  "no route exists between these points",
				Err:      routing.ErrRouteUnavailable,
			}
		}
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "http_400",
			Message:  "route request rejected",
			Err:      routing.ErrProviderUnavailable,
		}
	case resp.StatusCode != http.StatusOK:
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("http_%d", resp.StatusCode),
			Message:  "unexpected status from routing endpoint",
			Err:      routing.ErrProviderUnavailable,
		}
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "decode_failed",
			Message:  "failed to decode routing response",
			Err:      err,
		}
	}

	if len(body.Routes) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "no_routes",
			Message:  "routing response contained no routes",
			Err:      routing.ErrRouteUnavailable,
		}
	}

	route := body.Routes[0]

	var waypoints []routing.Waypoint
	for _, leg := range route.Legs {
		for _, p := range leg.Points {
			waypoints = append(waypoints, routing.Waypoint{Lat: p.Latitude, Lon: p.Longitude})
		}
	}

	departure, _ := time.Parse(time.RFC3339, route.Summary.DepartureTime)
	arrival, _ := time.Parse(time.RFC3339, route.Summary.ArrivalTime)

	return &routing.Summary{
		LengthMeters:        route.Summary.LengthInMeters,
		TravelTimeSeconds:   route.Summary.TravelTimeInSeconds,
		TrafficDelaySeconds: route.Summary.TrafficDelayInSeconds,
		DepartureTime:       departure,
		ArrivalTime:         arrival,
		Waypoints:           waypoints,
	}, nil
}
