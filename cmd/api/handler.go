package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	digestDelivery "cafesight-backend/internal/digest/delivery"
	insightDelivery "cafesight-backend/internal/insight/delivery"
	"cafesight-backend/pkg/config"
)

// Handler owns the gin engine and the delivery handlers.
type Handler struct {
	config         *config.Config
	insightHandler *insightDelivery.InsightHandler
	digestHandler  *digestDelivery.DigestHandler
	rateLimiter    *insightDelivery.RateLimiter
}

func NewHandler(cfg *config.Config, insightHandler *insightDelivery.InsightHandler, digestHandler *digestDelivery.DigestHandler) *Handler {
	return &Handler{
		config:         cfg,
		insightHandler: insightHandler,
		digestHandler:  digestHandler,
		rateLimiter:    insightDelivery.NewRateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst),
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	SetupRoutes(r, h.insightHandler, h.digestHandler, h.rateLimiter)

	return r.Run(addr)
}
