package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"gorm.io/gorm"
)

// GormFavoriteRepository is a GORM implementation of FavoriteRepository
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// FindOrCreate returns the existing favorite or creates one. A concurrent insert that
// loses the race on the unique index falls back to reading the winner's row.
func (r *GormFavoriteRepository) FindOrCreate(ctx context.Context, userID, tweetID uint64) (*models.Favorite, bool, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&favorite).Error
	if err == nil {
		return &favorite, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	favorite = models.Favorite{UserID: userID, TweetID: tweetID}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		favorite = models.Favorite{}
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND tweet_id = ?", userID, tweetID).
			First(&favorite).Error; err != nil {
			return nil, false, err
		}
		return &favorite, false, nil
	}

	return &favorite, true, nil
}

// Delete removes the user's favorite of the tweet
func (r *GormFavoriteRepository) Delete(ctx context.Context, userID, tweetID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}

// ListByUser lists a user's favorites, each with its tweet and the tweet's author, favorites and replies
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Tweet").
		Preload("Tweet.User").
		Preload("Tweet.Favorites", favoritesByID).
		Preload("Tweet.Replies", repliesOldestFirst).
		Preload("Tweet.Replies.User").
		Where("user_id = ?", userID).
		Order("favorites.created_at DESC").
		Order("favorites.id DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
