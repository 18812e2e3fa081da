package repository

import (
	"time"

	"cafesight-backend/internal/digest/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsightRepository persists the ranked insight rows for a run. Insight ids
// are deterministic per (run, type), so retries upsert instead of duplicating.
type InsightRepository interface {
	BulkUpsert(insights []domain.DigestInsight) error
	MarkClicked(id string, at time.Time) error
}

type gormInsightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &gormInsightRepository{db: db}
}

func (r *gormInsightRepository) BulkUpsert(insights []domain.DigestInsight) error {
	if len(insights) == 0 {
		return nil
	}
	now := time.Now()
	for i := range insights {
		insights[i].CreatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&insights).Error
}

func (r *gormInsightRepository) MarkClicked(id string, at time.Time) error {
	return r.db.Model(&domain.DigestInsight{}).Where("id = ? AND clicked_at IS NULL", id).
		Update("clicked_at", at).Error
}
