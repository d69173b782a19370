package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fplmate/internal/api/handlers"
	"github.com/jstittsworth/fplmate/internal/api/middleware"
	"github.com/jstittsworth/fplmate/pkg/config"
	"github.com/jstittsworth/fplmate/pkg/utils"
)

// NewRouter builds the engine with middleware, the health check and the
// versioned API. predictor may be nil when no rating model is loaded.
func NewRouter(cfg *config.Config, recommender handlers.TeamRecommender, predictor handlers.RatingPredictor) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.SendInternalError(c, "Internal server error")
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	router.NoRoute(func(c *gin.Context) {
		utils.SendNotFound(c, "Route not found")
	})

	healthHandler := handlers.NewHealthHandler(cfg.Season, predictor != nil)
	router.GET("/health", healthHandler.GetHealth)

	apiV1 := router.Group("/api/v1")
	SetupRoutes(apiV1, cfg, recommender, predictor)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, recommender handlers.TeamRecommender, predictor handlers.RatingPredictor) {
	recommendHandler := handlers.NewRecommendHandler(recommender)
	predictionHandler := handlers.NewPredictionHandler(predictor)

	// Each recommendation scans the whole season on disk
	group.GET("/recommend-team",
		middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		recommendHandler.RecommendTeam,
	)

	group.POST("/predict-rating", predictionHandler.PredictRating)
}
