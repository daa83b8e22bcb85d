package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check and metrics (no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes, all read only
	v1 := router.Group("/api/v1")
	{
		v1.GET("/arks/:address", handler.GetArk)
		v1.GET("/activity/:address", handler.GetActivity)
		v1.GET("/allowances/:address", handler.GetAllowances)
	}
}
