package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/geosense/geosense/internal/api/middleware"
	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/rewards"
	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/user"
)

// RouteHandler handles route planning endpoints.
type RouteHandler struct {
	routes  *routing.Service
	rewards *rewards.Service
	users   *user.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routes *routing.Service, rewardSvc *rewards.Service, users *user.Service) *RouteHandler {
	return &RouteHandler{
		routes:  routes,
		rewards: rewardSvc,
		users:   users,
	}
}

// PlanRoute handles POST /v1/routes/plan - plan a route, credit the reward
// and record the trip.
func (h *RouteHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := middleware.GetUsername(ctx)

	var input models.PlanRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Start == nil || input.End == nil {
		response.BadRequest(w, r, "start and end are required", []models.FieldError{
			{Field: "start", Message: "required"},
			{Field: "end", Message: "required"},
		})
		return
	}

	mode := routing.RouteType(input.RouteType)
	if !mode.Valid() {
		mode = routing.RouteEco
	}

	// Profile must exist before stats can be credited.
	if _, err := h.users.GetOrCreate(ctx, username); err != nil {
		response.InternalError(w, r, "failed to load user profile")
		return
	}

	summary, err := h.routes.Plan(ctx, routing.Request{
		StartLat: input.Start.Lat,
		StartLon: input.Start.Lon,
		EndLat:   input.End.Lat,
		EndLon:   input.End.Lon,
		Type:     mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrInvalidCoordinates):
			response.BadRequest(w, r, "coordinates out of range", nil)
		case errors.Is(err, routing.ErrRouteUnavailable):
			response.BadRequest(w, r, "no route available between these points", nil)
		default:
			response.ServiceUnavailable(w, r, "route planning unavailable")
		}
		return
	}

	reward, err := h.rewards.CompleteTrip(ctx, username, *summary, mode, input.StartLocation, input.EndLocation)
	if err != nil {
		response.InternalError(w, r, "failed to credit trip reward")
		return
	}

	response.JSON(w, r, http.StatusOK, models.PlanRouteResponse{
		Route: models.RouteSummary{
			RouteType:           string(mode),
			DistanceKm:          reward.DistanceKm,
			TravelTimeMinutes:   reward.TravelTimeMinutes,
			TrafficDelaySeconds: summary.TrafficDelaySeconds,
			DepartureTime:       summary.DepartureTime,
			ArrivalTime:         summary.ArrivalTime,
			Waypoints:           summary.Waypoints,
		},
		Reward: models.RewardBody{
			EcoPoints:  reward.EcoPoints,
			CO2SavedKg: reward.CO2SavedKg,
		},
	})
}
