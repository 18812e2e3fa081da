package dto

import (
	"cafesight-backend/internal/insight/domain"
)

// OverviewResponse is the synchronous read-path payload: the full candidate
// set partitioned for dashboard grouping plus the raw aggregates for charts.
type OverviewResponse struct {
	CafeID        string             `json:"cafe_id"`
	WindowDays    int                `json:"window_days"`
	Stats         domain.ReviewStats `json:"stats"`
	Themes        domain.Themes      `json:"themes"`
	Benchmark     domain.Benchmark   `json:"benchmark"`
	RatingGap     *float64           `json:"rating_gap,omitempty"`
	Signals       []domain.Candidate `json:"signals"`
	Opportunities []domain.Candidate `json:"opportunities"`
}
