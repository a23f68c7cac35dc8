package models

import (
	"time"

	"github.com/geosense/geosense/internal/ambient"
	"github.com/geosense/geosense/internal/badge"
	"github.com/geosense/geosense/internal/community"
	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/traffic"
	"github.com/geosense/geosense/internal/user"
)

// Point is a coordinate pair in request and response bodies.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DashboardResponse is the body of GET /v1/dashboard.
type DashboardResponse struct {
	User    *user.Profile            `json:"user"`
	Badges  []badge.Badge            `json:"badges"`
	Metrics ambient.DashboardMetrics `json:"metrics"`
	Traffic traffic.Pattern          `json:"traffic"`
	Insight string                   `json:"insight"`
}

// AnalyzeLocationRequest is the body of POST /v1/location/analyze.
type AnalyzeLocationRequest struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Query string   `json:"query"`
}

// ZoneResponse is a classified point of interest.
type ZoneResponse struct {
	Point
	Name     string `json:"name"`
	Category string `json:"category"`
	Cluster  *int   `json:"cluster,omitempty"`
	ZoneType string `json:"zone_type,omitempty"`
}

// AnalyzeLocationResponse is the body of POST /v1/location/analyze.
type AnalyzeLocationResponse struct {
	Zones     []ZoneResponse          `json:"zones"`
	Clustered bool                    `json:"clustered"`
	Traffic   traffic.Pattern         `json:"traffic"`
	Metrics   ambient.AnalysisMetrics `json:"metrics"`
	Insight   string                  `json:"insight"`
}

// PlanRouteRequest is the body of POST /v1/routes/plan.
type PlanRouteRequest struct {
	Start         *Point `json:"start"`
	End           *Point `json:"end"`
	RouteType     string `json:"route_type"`
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
}

// PlanRouteResponse is the body of POST /v1/routes/plan.
type PlanRouteResponse struct {
	Route  RouteSummary `json:"route"`
	Reward RewardBody   `json:"reward"`
}

// RouteSummary is the planned route in a response body.
type RouteSummary struct {
	RouteType           string             `json:"route_type"`
	DistanceKm          float64            `json:"distance_km"`
	TravelTimeMinutes   int                `json:"travel_time_minutes"`
	TrafficDelaySeconds int                `json:"traffic_delay_seconds"`
	DepartureTime       time.Time          `json:"departure_time"`
	ArrivalTime         time.Time          `json:"arrival_time"`
	Waypoints           []routing.Waypoint `json:"waypoints"`
}

// RewardBody is the reward earned by a planned route.
type RewardBody struct {
	EcoPoints  int     `json:"eco_points"`
	CO2SavedKg float64 `json:"co2_saved_kg"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body of POST /v1/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// CreatePostRequest is the body of POST /v1/community/posts.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Location string `json:"location"`
	PostType string `json:"post_type"`
}

// PostsResponse is the body of GET /v1/community/posts.
type PostsResponse struct {
	Posts []community.Post `json:"posts"`
}

// UpvoteResponse is the body of POST /v1/community/posts/{postID}/upvote.
type UpvoteResponse struct {
	PostID  string `json:"post_id"`
	Upvotes int    `json:"upvotes"`
}

// LeaderboardEntry is a row in GET /v1/leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Username   string  `json:"username"`
	EcoPoints  int     `json:"eco_points"`
	GreenScore int     `json:"green_score"`
	CO2SavedKg float64 `json:"co2_saved_kg"`
}

// LeaderboardResponse is the body of GET /v1/leaderboard.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// Health status values.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// Health is the body of the ops health and readiness endpoints.
type Health struct {
	Status  string                 `json:"status"`
	Time    time.Time              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}
