package tomtom_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosense/geosense/internal/poi"
	"github.com/geosense/geosense/internal/poi/tomtom"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/2/search/cafe.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		response := map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"poi": map[string]interface{}{
						"name":       "Cafe Goodluck",
						"categories": []string{"cafe", "restaurant"},
					},
					"address": map[string]interface{}{
						"freeformAddress": "Deccan Gymkhana, Pune",
					},
					"position": map[string]float64{
						"lat": 18.5167,
						"lon": 73.8415,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	results, err := client.Search(context.Background(), "cafe", 18.52, 73.85, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "Cafe Goodluck", results[0].Name)
	assert.Equal(t, []string{"cafe", "restaurant"}, results[0].Categories)
	assert.Equal(t, "Deccan Gymkhana, Pune", results[0].Address)
	assert.Equal(t, 18.5167, results[0].Lat)
	assert.Equal(t, 73.8415, results[0].Lon)
}

func TestClient_Search_DefaultLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	results, err := client.Search(context.Background(), "park", 18.52, 73.85, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Search(context.Background(), "cafe", 18.52, 73.85, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, poi.ErrProviderUnavailable)

	var provErr *poi.Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, tomtom.ProviderName, provErr.Provider)
	assert.Equal(t, "http_500", provErr.Code)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := tomtom.NewClient(tomtom.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Search(context.Background(), "cafe", 18.52, 73.85, 5)
	require.Error(t, err)

	var provErr *poi.Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "decode_failed", provErr.Code)
}
