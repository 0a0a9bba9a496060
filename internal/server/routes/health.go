package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/handlers"
	"github.com/lessensdelharmonie/harmonie/internal/metrics"
)

// SetupHealthRoutes configures health, version and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, opts *Options) {
	router.GET("/health", health.Check)
	router.GET("/version", health.Version)

	if opts.MetricsEnabled {
		router.GET("/metrics", metrics.Handler())
	}
}
