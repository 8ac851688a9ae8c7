// Package api contains the HTTP handlers and routing for the PIX gateway adapter.
package api

import (
	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())

	// Liveness probes
	router.GET("/", handler.Root("root OK"))
	router.GET("/api", handler.Root("/api OK"))
	router.GET("/health", handler.Health)

	router.GET("/metrics", func(c *gin.Context) {
		vmetrics.WritePrometheus(c.Writer, true)
	})

	// Charge operations
	pixRoutes := router.Group("/api/pix")
	{
		pixRoutes.POST("/create", handler.CreateCharge)
		pixRoutes.GET("/status/:id", handler.GetStatus)
	}

	// Called by the gateway; authenticity is checked inside the service so the
	// acknowledgment can stay unconditional.
	router.POST("/api/webhook/pix", handler.HandleWebhook)

	return router
}
