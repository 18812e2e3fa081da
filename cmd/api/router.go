package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	digestDelivery "cafesight-backend/internal/digest/delivery"
	insightDelivery "cafesight-backend/internal/insight/delivery"
)

func SetupRoutes(r *gin.Engine, insightHandler *insightDelivery.InsightHandler, digestHandler *digestDelivery.DigestHandler, rateLimiter *insightDelivery.RateLimiter) {
	// Email-facing routes live at the root so digest links stay short.
	r.GET("/r", digestHandler.TrackClick)
	r.GET("/unsubscribe", digestHandler.Unsubscribe)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		cafes := api.Group("/cafes")
		cafes.Use(rateLimiter.Middleware())
		{
			cafes.GET("/:id/overview", insightHandler.GetOverview)
		}

		digest := api.Group("/digest")
		{
			digest.POST("/run", digestHandler.RunDigests)
		}
	}
}
