package services

import (
	"context"

	"github.com/localnerve/gemstonesdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Counts holds the row count of each table in the schema
type Counts struct {
	Users        int64 `json:"users"`
	Gemstones    int64 `json:"gemstones"`
	Reviews      int64 `json:"reviews"`
	Associations int64 `json:"associations"`
}

// CountAll counts the rows of users, gemstones, reviews and user_gemstones
func CountAll(ctx context.Context, db *gorm.DB) (Counts, error) {
	var counts Counts
	q := db.WithContext(ctx).
		Clauses(hints.CommentBefore("select", "gemstonesdb:counts")).
		Session(&gorm.Session{})

	if err := q.Model(&models.User{}).Count(&counts.Users).Error; err != nil {
		return counts, err
	}
	if err := q.Model(&models.Gemstone{}).Count(&counts.Gemstones).Error; err != nil {
		return counts, err
	}
	if err := q.Model(&models.Review{}).Count(&counts.Reviews).Error; err != nil {
		return counts, err
	}
	if err := q.Model(&models.UserGemstone{}).Count(&counts.Associations).Error; err != nil {
		return counts, err
	}

	return counts, nil
}
