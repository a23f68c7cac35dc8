package handler

import (
	"net/http"
	"time"

	"github.com/geosense/geosense/internal/ambient"
	"github.com/geosense/geosense/internal/api/middleware"
	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/insight"
	"github.com/geosense/geosense/internal/traffic"
	"github.com/geosense/geosense/internal/user"
)

// DashboardHandler handles the dashboard endpoint.
type DashboardHandler struct {
	users    *user.Service
	sampler  *ambient.Sampler
	traffic  *traffic.Estimator
	insights *insight.Composer
	clock    func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(users *user.Service, sampler *ambient.Sampler, estimator *traffic.Estimator, insights *insight.Composer) *DashboardHandler {
	return &DashboardHandler{
		users:    users,
		sampler:  sampler,
		traffic:  estimator,
		insights: insights,
		clock:    time.Now,
	}
}

// GetDashboard handles GET /v1/dashboard - the user's home screen snapshot.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	profile, err := h.users.GetOrCreate(ctx, username)
	if err != nil {
		response.InternalError(w, r, "failed to load user profile")
		return
	}

	badges, err := h.users.Badges(ctx, username)
	if err != nil {
		response.InternalError(w, r, "failed to load badges")
		return
	}

	metrics := h.sampler.Dashboard()
	pattern := h.traffic.Estimate(h.clock())

	text := h.insights.Compose(ctx, insight.Conditions{
		TrafficLevel: metrics.TrafficLevel,
		AQI:          metrics.AQI,
		Context:      "dashboard",
	})

	response.JSON(w, r, http.StatusOK, models.DashboardResponse{
		User:    profile,
		Badges:  badges,
		Metrics: metrics,
		Traffic: pattern,
		Insight: text,
	})
}
