package repository

import (
	"context"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFollowerRepository is a GORM implementation of FollowerRepository
type GormFollowerRepository struct {
	db *gorm.DB
}

// NewFollowerRepository creates a new FollowerRepository
func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &GormFollowerRepository{db: db}
}

// Follow records the edge; the unique (user_id, follower_id) index turns repeats into no-ops
func (r *GormFollowerRepository) Follow(ctx context.Context, followerID, userID uint64) error {
	edge := models.Follower{
		UserID:     userID,
		FollowerID: followerID,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "follower_id"}},
			DoNothing: true,
		}).
		Create(&edge).Error
}

// Unfollow removes the edge
func (r *GormFollowerRepository) Unfollow(ctx context.Context, followerID, userID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follower{})
	return result.RowsAffected, result.Error
}

// IsFollowing reports whether followerID follows userID
func (r *GormFollowerRepository) IsFollowing(ctx context.Context, followerID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error
	return count > 0, err
}

// Following lists the users that userID follows, in the order they were followed
func (r *GormFollowerRepository) Following(ctx context.Context, userID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN followers ON followers.user_id = users.id").
		Where("followers.follower_id = ?", userID).
		Order("followers.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Followers lists the users that follow userID, in the order they followed
func (r *GormFollowerRepository) Followers(ctx context.Context, userID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN followers ON followers.follower_id = users.id").
		Where("followers.user_id = ?", userID).
		Order("followers.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
