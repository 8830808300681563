package repository

import (
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository account lookup
type UserRepository interface {
	// FindOneByLogin returns nil without error when no account matches
	FindOneByLogin(login string) (*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindOneByLogin(login string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
