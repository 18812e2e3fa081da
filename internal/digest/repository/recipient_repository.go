package repository

import (
	"time"

	"cafesight-backend/internal/digest/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipientRepository persists per-owner delivery records for a run.
type RecipientRepository interface {
	FindByRunAndUser(runID, userID string) (*domain.DigestRecipient, error)
	CreateIfAbsent(recipient *domain.DigestRecipient) (*domain.DigestRecipient, error)
	MarkSent(id string, sentAt time.Time, messageID string) error
	MarkFailed(id string, errorDetail string) error
}

type gormRecipientRepository struct {
	db *gorm.DB
}

func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &gormRecipientRepository{db: db}
}

func (r *gormRecipientRepository) FindByRunAndUser(runID, userID string) (*domain.DigestRecipient, error) {
	var recipient domain.DigestRecipient
	err := r.db.Where("run_id = ? AND user_id = ?", runID, userID).First(&recipient).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &recipient, nil
}

func (r *gormRecipientRepository) CreateIfAbsent(recipient *domain.DigestRecipient) (*domain.DigestRecipient, error) {
	if recipient.ID == "" {
		recipient.ID = uuid.New().String()
	}
	recipient.CreatedAt = time.Now()
	recipient.UpdatedAt = recipient.CreatedAt

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(recipient).Error
	if err != nil {
		return nil, err
	}

	return r.FindByRunAndUser(recipient.RunID, recipient.UserID)
}

func (r *gormRecipientRepository) MarkSent(id string, sentAt time.Time, messageID string) error {
	return r.db.Model(&domain.DigestRecipient{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.RecipientStatusSent,
			"sent_at":    sentAt,
			"message_id": messageID,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormRecipientRepository) MarkFailed(id string, errorDetail string) error {
	return r.db.Model(&domain.DigestRecipient{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       domain.RecipientStatusFailed,
			"error_detail": errorDetail,
			"updated_at":   time.Now(),
		}).Error
}
