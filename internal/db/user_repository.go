package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := repo.database.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

func (repo *UserRepository) FindByHandle(ctx context.Context, handle string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, errs.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, errs.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error {
	result := repo.database.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
