package repository

import (
	"time"

	"cafesight-backend/internal/insight/domain"

	"gorm.io/gorm"
)

// ReviewRepository provides read access to synced reviews. Rows are written
// by the external sync process; this service never mutates them.
type ReviewRepository interface {
	FindByCafeInRange(cafeID string, from, to time.Time) ([]domain.Review, error)
}

type gormReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &gormReviewRepository{db: db}
}

func (r *gormReviewRepository) FindByCafeInRange(cafeID string, from, to time.Time) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.Where("cafe_id = ? AND posted_at >= ? AND posted_at < ?", cafeID, from, to).
		Order("posted_at ASC").Find(&reviews).Error
	return reviews, err
}
