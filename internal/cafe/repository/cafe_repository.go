package repository

import (
	"cafesight-backend/internal/cafe/domain"

	"gorm.io/gorm"
)

// CafeRepository provides read access to café records.
type CafeRepository interface {
	FindByID(id string) (*domain.Cafe, error)
	FindAll() ([]*domain.Cafe, error)
}

type gormCafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &gormCafeRepository{db: db}
}

func (r *gormCafeRepository) FindByID(id string) (*domain.Cafe, error) {
	var cafe domain.Cafe
	err := r.db.Where("id = ?", id).First(&cafe).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cafe, nil
}

func (r *gormCafeRepository) FindAll() ([]*domain.Cafe, error) {
	var cafes []*domain.Cafe
	err := r.db.Order("created_at ASC").Find(&cafes).Error
	return cafes, err
}
