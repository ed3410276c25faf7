// Package rest wires the traceability REST API: route registration, query
// parsing, and the stable numeric error envelope.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/veritrace/veritrace/internal/api/middleware"
)

// SetupRoutes registers all REST API routes. The single-code read is public
// (it backs the consumer scan page) and rate limited; everything else
// requires an authenticated actor.
func SetupRoutes(router *gin.Engine, h Handler, auth *middleware.Authenticator, rateLimit gin.HandlerFunc) {
	// Health check endpoint (no versioning, no auth)
	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		if rateLimit != nil {
			v1.GET("/tracings/:key", rateLimit, h.GetTracing)
		} else {
			v1.GET("/tracings/:key", h.GetTracing)
		}

		v1.GET("/tracings", auth.Auth(), h.ListTracings)
		v1.PUT("/tracings", auth.Auth(), h.UpdateTracing)
		v1.POST("/tracings", auth.Auth(), h.TriggerIssuance)
		v1.DELETE("/tracings/:key", auth.Auth(), h.DeleteTracing)
	}
}
