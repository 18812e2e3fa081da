package repository

import (
	"cafesight-backend/internal/cafe/domain"

	"gorm.io/gorm"
)

// UserRepository resolves owner ids to notification emails. Account
// management itself lives outside this service.
type UserRepository interface {
	FindByID(id string) (*domain.User, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
