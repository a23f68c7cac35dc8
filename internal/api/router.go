// Package api provides the HTTP API for GeoSense.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/geosense/geosense/internal/ambient"
	"github.com/geosense/geosense/internal/api/handler"
	"github.com/geosense/geosense/internal/api/middleware"
	"github.com/geosense/geosense/internal/chat"
	"github.com/geosense/geosense/internal/community"
	"github.com/geosense/geosense/internal/insight"
	"github.com/geosense/geosense/internal/poi"
	"github.com/geosense/geosense/internal/rewards"
	"github.com/geosense/geosense/internal/routing"
	"github.com/geosense/geosense/internal/traffic"
	"github.com/geosense/geosense/internal/user"
	"github.com/geosense/geosense/internal/zones"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	ReadinessChecks  map[string]handler.ReadinessChecker
	UserService      *user.Service
	POIService       *poi.Service
	RoutingService   *routing.Service
	RewardsService   *rewards.Service
	CommunityService *community.Service
	Classifier       *zones.Classifier
	TrafficEstimator *traffic.Estimator
	AmbientSampler   *ambient.Sampler
	InsightComposer  *insight.Composer
	ChatResponder    *chat.Responder
	DefaultLat       float64
	DefaultLon       float64
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "geosense-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies
	r.Use(middleware.Identity)             // Acting user from X-User header

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ReadinessChecks)
	dashboardHandler := handler.NewDashboardHandler(cfg.UserService, cfg.AmbientSampler, cfg.TrafficEstimator, cfg.InsightComposer)
	locationHandler := handler.NewLocationHandler(handler.LocationHandlerConfig{
		POIs:       cfg.POIService,
		Classifier: cfg.Classifier,
		Sampler:    cfg.AmbientSampler,
		Traffic:    cfg.TrafficEstimator,
		Insights:   cfg.InsightComposer,
		DefaultLat: cfg.DefaultLat,
		DefaultLon: cfg.DefaultLon,
	})
	routeHandler := handler.NewRouteHandler(cfg.RoutingService, cfg.RewardsService, cfg.UserService)
	chatHandler := handler.NewChatHandler(cfg.ChatResponder)
	communityHandler := handler.NewCommunityHandler(cfg.CommunityService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.UserService)

	// Rate limits per endpoint category
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Dashboard - standard rate limiting
		r.With(standardRateLimit).Get("/dashboard", dashboardHandler.GetDashboard)

		// Location analysis fans out to the POI provider - expensive
		r.With(expensiveRateLimit).Post("/location/analyze", locationHandler.AnalyzeLocation)

		// Route planning fans out to the routing provider - expensive
		r.With(expensiveRateLimit).Post("/routes/plan", routeHandler.PlanRoute)

		// Chat calls the language model - expensive
		r.With(expensiveRateLimit).Post("/chat", chatHandler.Chat)

		// Community feed - standard rate limiting
		r.Route("/community/posts", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", communityHandler.ListPosts)
			r.Post("/", communityHandler.CreatePost)
			r.Post("/{postID}/upvote", communityHandler.UpvotePost)
		})

		// Leaderboard - standard rate limiting
		r.With(standardRateLimit).Get("/leaderboard", leaderboardHandler.GetLeaderboard)
	})

	return r
}
