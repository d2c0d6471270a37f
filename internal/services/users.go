package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/gemstonesdb/internal/models"
	"github.com/localnerve/gemstonesdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateUser inserts a user with a unique username
func CreateUser(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	user := &models.User{Username: username}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q: %w", types.ErrDuplicateUsername, username, err)
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return user, nil
}

// GetUser loads a user with owned gemstones, authored reviews and collected gems
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Preload("Gemstones").
		Preload("Reviews").
		Preload("Gems").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, types.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user with the user's own reviews and collection links,
// then lets the database cascade to the user's gemstones and everything that
// references them. The explicit deletes cover SQL Server, where those two
// foreign keys are NO ACTION.
func DeleteUser(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var affectedRows int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews of user %d: %w", id, err)
		}
		if err := tx.Where("users_id = ?", id).Delete(&models.UserGemstone{}).Error; err != nil {
			return fmt.Errorf("delete collection of user %d: %w", id, err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user %d: %w", id, types.ErrNotFound)
		}
		affectedRows = result.RowsAffected
		return nil
	})

	return affectedRows, err
}
