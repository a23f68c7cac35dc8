// Package tomtom provides a POI search client for the TomTom Search API.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geosense/geosense/internal/poi"
	"github.com/geosense/geosense/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the TomTom Search API.
	DefaultBaseURL = "https://api.tomtom.com"

	// ProviderName identifies this provider.
	ProviderName = "tomtom-search"

	defaultLimit = 10
)

// ClientConfig holds configuration for the TomTom search client.
type ClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a single-attempt resilient client is created; search sits on
	// the request path, so a failure falls through to synthetic results
	// instead of retrying.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a TomTom Search API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new TomTom search client.
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

// API response types (from TomTom Search API).

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	POI      searchPOI     `json:"poi"`
	Address  searchAddress `json:"address"`
	Position searchPos     `json:"position"`
}

type searchPOI struct {
	Name       string           `json:"name"`
	Categories []string         `json:"categories"`
	Classes    []searchPOIClass `json:"classifications"`
}

type searchPOIClass struct {
	Code string `json:"code"`
}

type searchAddress struct {
	FreeformAddress string `json:"freeformAddress"`
}

type searchPos struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Search queries the TomTom fuzzy search endpoint for points matching query
// near the coordinate.
func (c *Client) Search(ctx context.Context, query string, lat, lon float64, limit int) ([]poi.Result, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	u := fmt.Sprintf("%s/search/2/search/%s.json?key=%s&lat=%f&lon=%f&limit=%d",
		c.baseURL, url.PathEscape(query), url.QueryEscape(c.apiKey), lat, lon, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &poi.Error{
			Provider: ProviderName,
			Code:     "request_creation_failed",
			Message:  "failed to create search request",
			Err:      err,
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &poi.Error{
			Provider: ProviderName,
			Code:     "request_failed",
			Message:  "search request failed",
			Err:      fmt.Errorf("%w: %w", poi.ErrProviderUnavailable, err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &poi.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("http_%d", resp.StatusCode),
			Message:  "unexpected status from search endpoint",
			Err:      poi.ErrProviderUnavailable,
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &poi.Error{
			Provider: ProviderName,
			Code:     "decode_failed",
			Message:  "failed to decode search response",
			Err:      err,
		}
	}

	results := make([]poi.Result, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, poi.Result{
			Lat:        r.Position.Lat,
			Lon:        r.Position.Lon,
			Name:       r.POI.Name,
			Categories: r.POI.Categories,
			Address:    r.Address.FreeformAddress,
		})
	}

	return results, nil
}
