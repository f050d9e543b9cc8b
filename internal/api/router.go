package api

import (
	"github.com/gin-gonic/gin"
	"github.com/openroles/jobfeed/internal/api/handler"
	"github.com/openroles/jobfeed/internal/api/middleware"
	"github.com/openroles/jobfeed/internal/config"
	"github.com/openroles/jobfeed/internal/repository"
	"github.com/openroles/jobfeed/internal/service"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	db *gorm.DB,
	pipeline *service.Pipeline,
	jobRepo *repository.JobRepository,
	reviewRepo *repository.ReviewRepository,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler(db)
	feedHandler := handler.NewFeedHandler(pipeline, jobRepo, reviewRepo, cfg.Pipeline.ConfidenceThreshold)
	reviewHandler := handler.NewReviewHandler(reviewRepo)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Feed processing
		v1.POST("/feeds/process", feedHandler.ProcessFeed)

		// Pipeline status
		v1.GET("/status", feedHandler.Status)

		// Manual review queue
		v1.GET("/review/queue", reviewHandler.Queue)
		v1.GET("/review/status", reviewHandler.Status)
	}

	return r
}
