package persistent

import (
	"chilaq/internal/entity"
	"chilaq/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.UserModel, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(email string) (*model.UserModel, error) {
	var user model.UserModel
	err := r.db.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, entity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
