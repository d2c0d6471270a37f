package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/gemstonesdb/internal/models"
	"github.com/localnerve/gemstonesdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateGemstone inserts a gemstone owned by ownerID
func CreateGemstone(ctx context.Context, db *gorm.DB, ownerID uint, name, color string) (*models.Gemstone, error) {
	gem := &models.Gemstone{GemstoneName: name, Color: color, UserID: ownerID}
	if err := db.WithContext(ctx).Create(gem).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("owner %d: %w", ownerID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("create gemstone: %w", err)
	}
	return gem, nil
}

// DeleteGemstone deletes a gemstone and, by cascade, its reviews and collection
// links. The owner and the owner's other gemstones are untouched.
func DeleteGemstone(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var affectedRows int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Gemstone{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("gemstone %d: %w", id, types.ErrNotFound)
		}
		affectedRows = result.RowsAffected
		return nil
	})

	return affectedRows, err
}

// CollectGemstone links a gemstone into a user's collection.
// It reports whether a new link was created; an existing link is left alone.
func CollectGemstone(ctx context.Context, db *gorm.DB, userID, gemstoneID uint) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserGemstone{UsersID: userID, GemstonesID: gemstoneID})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return false, fmt.Errorf("collect gemstone %d for user %d: %w", gemstoneID, userID, types.ErrNotFound)
		}
		return false, fmt.Errorf("collect gemstone %d for user %d: %w", gemstoneID, userID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AddReview records a review by userID about gemstoneID
func AddReview(ctx context.Context, db *gorm.DB, userID, gemstoneID uint, content string) (*models.Review, error) {
	review := &models.Review{UserID: userID, GemstoneID: gemstoneID}
	if content != "" {
		review.Content = &content
	}
	if err := db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, fmt.Errorf("review by user %d of gemstone %d: %w", userID, gemstoneID, types.ErrNotFound)
		}
		return nil, fmt.Errorf("add review: %w", err)
	}
	return review, nil
}
