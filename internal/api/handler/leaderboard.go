package handler

import (
	"net/http"

	"github.com/geosense/geosense/internal/api/models"
	"github.com/geosense/geosense/internal/api/response"
	"github.com/geosense/geosense/internal/user"
)

const leaderboardLimit = 10

// LeaderboardHandler handles the leaderboard endpoint.
type LeaderboardHandler struct {
	users *user.Service
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(users *user.Service) *LeaderboardHandler {
	return &LeaderboardHandler{users: users}
}

// GetLeaderboard handles GET /v1/leaderboard - top users by eco points.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.Leaderboard(r.Context(), leaderboardLimit)
	if err != nil {
		response.InternalError(w, r, "failed to load leaderboard")
		return
	}

	entries := make([]models.LeaderboardEntry, len(profiles))
	for i, p := range profiles {
		entries[i] = models.LeaderboardEntry{
			Rank:       i + 1,
			Username:   p.Username,
			EcoPoints:  p.EcoPoints,
			GreenScore: p.GreenScore,
			CO2SavedKg: p.CO2SavedKg,
		}
	}

	response.JSON(w, r, http.StatusOK, models.LeaderboardResponse{Leaderboard: entries})
}
