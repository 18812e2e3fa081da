package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cafesight-backend/internal/insight/usecase"
)

// InsightHandler serves the live overview read path.
type InsightHandler struct {
	insightUsecase usecase.InsightUsecase
}

func NewInsightHandler(insightUsecase usecase.InsightUsecase) *InsightHandler {
	return &InsightHandler{insightUsecase: insightUsecase}
}

// GetOverview returns the full candidate set for a café.
// GET /api/cafes/:id/overview?window_days=180
func (h *InsightHandler) GetOverview(c *gin.Context) {
	cafeID := c.Param("id")
	windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", "0"))
	if err != nil || windowDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window_days must be a non-negative integer"})
		return
	}

	resp, err := h.insightUsecase.Overview(cafeID, windowDays, time.Now())
	if err != nil {
		if err == usecase.ErrCafeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cafe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
