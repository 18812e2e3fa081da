package usecase

import (
	"time"

	"cafesight-backend/internal/insight/dto"
)

// InsightUsecase is the live dashboard read path: no persistence, no email,
// no side effects beyond the read.
type InsightUsecase interface {
	Overview(cafeID string, windowDays int, now time.Time) (*dto.OverviewResponse, error)
}
