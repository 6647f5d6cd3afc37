package http

import (
	"github.com/gin-gonic/gin"
	"github.com/skinpro/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", handler.ListProducts)

		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("/filter", handler.RecommendByFilter)
			recommendations.POST("/product", handler.RecommendByProduct)
		}
	}

	return router
}
