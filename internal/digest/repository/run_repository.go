package repository

import (
	"time"

	"cafesight-backend/internal/digest/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunRepository persists digest runs. Run creation is conditional on the
// unique (cafe, period) index so concurrent scheduler invocations cannot
// create duplicates.
type RunRepository interface {
	FindByCafeAndPeriod(cafeID string, periodStart, periodEnd time.Time) (*domain.DigestRun, error)
	CreateIfAbsent(run *domain.DigestRun) (*domain.DigestRun, error)
	MarkSent(id string, sentAt time.Time, ctaURL string) error
	MarkFailed(id string) error
}

type gormRunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &gormRunRepository{db: db}
}

func (r *gormRunRepository) FindByCafeAndPeriod(cafeID string, periodStart, periodEnd time.Time) (*domain.DigestRun, error) {
	var run domain.DigestRun
	err := r.db.Where("cafe_id = ? AND period_start = ? AND period_end = ?", cafeID, periodStart, periodEnd).
		First(&run).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *gormRunRepository) CreateIfAbsent(run *domain.DigestRun) (*domain.DigestRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now()
	run.UpdatedAt = run.CreatedAt

	// DO NOTHING on the period index: if a concurrent invocation inserted
	// first, fall through and read its row back.
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cafe_id"}, {Name: "period_start"}, {Name: "period_end"}},
		DoNothing: true,
	}).Create(run).Error
	if err != nil {
		return nil, err
	}

	return r.FindByCafeAndPeriod(run.CafeID, run.PeriodStart, run.PeriodEnd)
}

func (r *gormRunRepository) MarkSent(id string, sentAt time.Time, ctaURL string) error {
	return r.db.Model(&domain.DigestRun{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.RunStatusSent,
			"sent_at":    sentAt,
			"cta_url":    ctaURL,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormRunRepository) MarkFailed(id string) error {
	return r.db.Model(&domain.DigestRun{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.RunStatusFailed,
			"updated_at": time.Now(),
		}).Error
}
