package database

import (
	"context"

	"scriptum/internal/config"
	"scriptum/internal/core/user"
)

// UserRepositoryDatabase implements UserRepository on top of gorm.
type UserRepositoryDatabase struct{}

func NewUserRepositoryDatabase() *UserRepositoryDatabase {
	return &UserRepositoryDatabase{}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := config.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := config.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) error {
	return config.DB.WithContext(ctx).Save(u).Error
}
