package repository

import (
	"cafesight-backend/internal/insight/domain"

	"gorm.io/gorm"
)

// CompetitorRepository provides read access to competitor snapshot batches.
type CompetitorRepository interface {
	// FindLatestBatch returns all snapshots sharing the café's most recent
	// snapshot date, or an empty slice when the café has none.
	FindLatestBatch(cafeID string) ([]domain.CompetitorSnapshot, error)
}

type gormCompetitorRepository struct {
	db *gorm.DB
}

func NewCompetitorRepository(db *gorm.DB) CompetitorRepository {
	return &gormCompetitorRepository{db: db}
}

func (r *gormCompetitorRepository) FindLatestBatch(cafeID string) ([]domain.CompetitorSnapshot, error) {
	var latest domain.CompetitorSnapshot
	err := r.db.Where("cafe_id = ?", cafeID).Order("snapshot_date DESC").First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []domain.CompetitorSnapshot{}, nil
		}
		return nil, err
	}

	var batch []domain.CompetitorSnapshot
	err = r.db.Where("cafe_id = ? AND snapshot_date = ?", cafeID, latest.SnapshotDate).
		Find(&batch).Error
	return batch, err
}
