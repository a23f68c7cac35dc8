package tomtom_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/routing/tomtom"
)

func routeFixture() map[string]interface{} {
	return map[string]interface{}{
		"routes": []map[string]interface{}{
			{
				"summary": map[string]interface{}{
					"lengthInMeters":        15000,
					"travelTimeInSeconds":   3600,
					"trafficDelayInSeconds": 120,
					"departureTime":         "2025-06-15T12:00:00Z",
					"arrivalTime":           "2025-06-15T13:00:00Z",
				},
				"legs": []map[string]interface{}{
					{
						"points": []map[string]float64{
							{"latitude": 18.5204, "longitude": 73.8567},
							{"latitude": 18.5913, "longitude": 73.7389},
						},
					},
				},
			},
		},
	}
}

func TestClient_Plan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/routing/1/calculateRoute/"))
		assert.Equal(t, "eco", r.URL.Query().Get("routeType"))
		assert.Equal(t, "true", r.URL.Query().Get("traffic"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(routeFixture())
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	summary, err := client.Plan(context.Background(), routing.Request{
		StartLat: 18.5204, StartLon: 73.8567,
		EndLat: 18.5913, EndLon: 73.7389,
		Type: routing.RouteEco,
	})
	require.NoError(t, err)

	assert.Equal(t, 15000, summary.LengthMeters)
	assert.Equal(t, 3600, summary.TravelTimeSeconds)
	assert.Equal(t, 120, summary.TrafficDelaySeconds)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), summary.DepartureTime)
	assert.Len(t, summary.Waypoints, 2)
}

func TestClient_Plan_FastestRouteType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fastest", r.URL.Query().Get("routeType"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(routeFixture())
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Plan(context.Background(), routing.Request{
		StartLat: 18.52, StartLon: 73.85,
		EndLat: 18.59, EndLon: 73.74,
		Type: routing.RouteFastest,
	})
	require.NoError(t, err)
}

func TestClient_Plan_NoRouteFoundMeansNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"detailedError": map[string]string{
				"code":    "NO_ROUTE_FOUND",
				"message": "No route found",
			},
		})
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Plan(context.Background(), routing.Request{Type: routing.RouteEco})
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRouteUnavailable)

	var provErr *routing.Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "no_route_found", provErr.Code)
}

func TestClient_Plan_OtherBadRequestIsProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Plan(context.Background(), routing.Request{Type: routing.RouteEco})
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrProviderUnavailable)
	assert.NotErrorIs(t, err, routing.ErrRouteUnavailable)
}

func TestClient_Plan_EmptyRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"routes": []interface{}{}})
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Plan(context.Background(), routing.Request{Type: routing.RouteEco})
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrRouteUnavailable)

	var provErr *routing.Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "no_routes", provErr.Code)
}

func TestClient_Plan_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Plan(context.Background(), routing.Request{Type: routing.RouteEco})
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrProviderUnavailable)
}
