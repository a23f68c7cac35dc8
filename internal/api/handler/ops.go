// Package handler provides HTTP handlers for the GeoSense API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
)

// ReadinessChecker reports whether a dependency is ready to serve.
type ReadinessChecker func(ctx context.Context) error

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	checks    map[string]ReadinessChecker
}

// NewOpsHandler creates a new OpsHandler. Checks may be nil when the
// service runs entirely on in-memory stores.
func NewOpsHandler(version, buildTime string, checks map[string]ReadinessChecker) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		checks:    checks,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now(),
	}

	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			if health.Details == nil {
				health.Details = map[string]interface{}{}
			}
			health.Details[name] = err.Error()
			health.Status = models.HealthStatusDegraded
			status = http.StatusServiceUnavailable
		}
	}

	response.JSON(w, r, status, health)
}
