package domain

import "time"

// CompetitorSnapshot is one nearby business's public metrics as of a snapshot
// date. Snapshots are grouped by date; only the most recent batch feeds the
// live benchmark.
type CompetitorSnapshot struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	CafeID       string    `json:"cafe_id" gorm:"index:idx_snapshots_cafe_date;not null"`
	Name         string    `json:"name,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	TotalReviews *int      `json:"total_reviews,omitempty"`
	SnapshotDate time.Time `json:"snapshot_date" gorm:"index:idx_snapshots_cafe_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (CompetitorSnapshot) TableName() string {
	return "competitor_snapshots"
}

// Benchmark is the aggregate over the most recent snapshot batch. A café with
// no snapshots yields Count 0 and nil fields, which suppresses every
// benchmark-dependent candidate.
type Benchmark struct {
	Count          int        `json:"count"`
	SnapshotAt     *time.Time `json:"snapshot_at,omitempty"`
	AvgRating      *float64   `json:"avg_rating,omitempty"`
	AvgReviewCount *float64   `json:"avg_review_count,omitempty"`
}
