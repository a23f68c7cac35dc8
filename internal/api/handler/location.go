package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/geosense/geosense/internal/ambient"
	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/insight"
	"github.com/geosense/geosense/internal/poi"
	"github.com/geosense/geosense/internal/traffic"
	"github.com/geosense/geosense/internal/zones"
	"github.com/geosense/geosense/pkg/geo"
)

const analyzePOILimit = 5

// LocationHandler handles location analysis endpoints.
type LocationHandler struct {
	pois       *poi.Service
	classifier *zones.Classifier
	sampler    *ambient.Sampler
	traffic    *traffic.Estimator
	insights   *insight.Composer
	defaultLat float64
	defaultLon float64
	clock      func() time.Time
}

// LocationHandlerConfig holds dependencies for the location handler.
type LocationHandlerConfig struct {
	POIs       *poi.Service
	Classifier *zones.Classifier
	Sampler    *ambient.Sampler
	Traffic    *traffic.Estimator
	Insights   *insight.Composer
	DefaultLat float64
	DefaultLon float64
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(cfg LocationHandlerConfig) *LocationHandler {
	return &LocationHandler{
		pois:       cfg.POIs,
		classifier: cfg.Classifier,
		sampler:    cfg.Sampler,
		traffic:    cfg.Traffic,
		insights:   cfg.Insights,
		defaultLat: cfg.DefaultLat,
		defaultLon: cfg.DefaultLon,
		clock:      time.Now,
	}
}

// AnalyzeLocation handles POST /v1/location/analyze - POIs around a
// coordinate classified into zones, plus ambient conditions and an insight.
func (h *LocationHandler) AnalyzeLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input models.AnalyzeLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	lat, lon := h.defaultLat, h.defaultLon
	if input.Lat != nil && input.Lon != nil {
		lat, lon = *input.Lat, *input.Lon
	}
	if !geo.ValidCoordinate(lat, lon) {
		response.BadRequest(w, r, "coordinates out of range", []models.FieldError{
			{Field: "lat", Message: "latitude must be in [-90, 90]"},
			{Field: "lon", Message: "longitude must be in [-180, 180]"},
		})
		return
	}

	query := input.Query
	if query == "" {
		query = "places"
	}

	results, err := h.pois.Search(ctx, query, lat, lon, analyzePOILimit)
	if err != nil {
		response.ServiceUnavailable(w, r, "poi search unavailable")
		return
	}
	if len(results) > analyzePOILimit {
		results = results[:analyzePOILimit]
	}

	points := make([]zones.LocatedPoint, len(results))
	for i, res := range results {
		category := ""
		if len(res.Categories) > 0 {
			category = res.Categories[0]
		}
		points[i] = zones.LocatedPoint{
			Lat:      res.Lat,
			Lon:      res.Lon,
			Name:     res.Name,
			Category: category,
		}
	}

	out := make([]models.ZoneResponse, len(points))
	clustered := false

	assignments, err := h.classifier.Classify(points)
	switch {
	case err == nil:
		clustered = true
		for i, za := range assignments {
			cluster := za.Cluster
			out[i] = models.ZoneResponse{
				Point:    models.Point{Lat: za.Lat, Lon: za.Lon},
				Name:     za.Name,
				Category: za.Category,
				Cluster:  &cluster,
				ZoneType: string(za.ZoneType),
			}
		}
	case errors.Is(err, zones.ErrInsufficientData):
		// Too few points to cluster; return them unlabelled.
		for i, p := range points {
			out[i] = models.ZoneResponse{
				Point:    models.Point{Lat: p.Lat, Lon: p.Lon},
				Name:     p.Name,
				Category: p.Category,
			}
		}
	default:
		response.InternalError(w, r, "zone classification failed")
		return
	}

	pattern := h.traffic.Estimate(h.clock())
	metrics := h.sampler.Analysis(pattern.Level)

	text := h.insights.Compose(ctx, insight.Conditions{
		TrafficLevel: metrics.TrafficLevel,
		AQI:          metrics.AQI,
		Context:      "location_analysis",
	})

	response.JSON(w, r, http.StatusOK, models.AnalyzeLocationResponse{
		Zones:     out,
		Clustered: clustered,
		Traffic:   pattern,
		Metrics:   metrics,
		Insight:   text,
	})
}
