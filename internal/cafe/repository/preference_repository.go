package repository

import (
	"time"

	"cafesight-backend/internal/cafe/domain"

	"gorm.io/gorm"
)

// PreferenceRepository reads and updates digest notification preferences.
type PreferenceRepository interface {
	FindByUserID(userID string) (*domain.NotificationPreference, error)
	Unsubscribe(userID string, at time.Time) error
}

type gormPreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &gormPreferenceRepository{db: db}
}

func (r *gormPreferenceRepository) FindByUserID(userID string) (*domain.NotificationPreference, error) {
	var pref domain.NotificationPreference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *gormPreferenceRepository) Unsubscribe(userID string, at time.Time) error {
	pref := domain.NotificationPreference{
		UserID:         userID,
		DigestEnabled:  false,
		UnsubscribedAt: &at,
		UpdatedAt:      at,
	}
	return r.db.Save(&pref).Error
}
