package repository

import (
	"context"

	"github.com/yukikurage/twitter-clone-api/internal/database"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
	"gorm.io/gorm"
)

// GormTweetRepository is a GORM implementation of TweetRepository
type GormTweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new TweetRepository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &GormTweetRepository{db: db}
}

func repliesOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("replies.created_at ASC").Order("replies.id ASC")
}

func favoritesByID(db *gorm.DB) *gorm.DB {
	return db.Order("favorites.id ASC")
}

// withTweetRelations is the fixed fetch plan shared by every tweet response:
// author, replies with their authors, favorites.
func withTweetRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Replies", repliesOldestFirst).
		Preload("Replies.User").
		Preload("Favorites", favoritesByID)
}

// Create creates a new tweet
func (r *GormTweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

// FindByID finds a tweet without relations
func (r *GormTweetRepository) FindByID(ctx context.Context, id uint64) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// FindWithRelations loads a tweet with its author, replies and favorites
func (r *GormTweetRepository) FindWithRelations(ctx context.Context, id uint64) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).
		Scopes(withTweetRelations).
		First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// FindOwned finds a tweet by ID and owner in a single lookup, so a foreign
// tweet is indistinguishable from a missing one.
func (r *GormTweetRepository) FindOwned(ctx context.Context, id, userID uint64) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// ListByUser lists a user's tweets with relations, newest first
func (r *GormTweetRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := r.db.WithContext(ctx).
		Scopes(withTweetRelations, database.Newest("tweets")).
		Where("user_id = ?", userID).
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// Timeline lists tweets authored by the user or by anyone the user follows.
// Each tweet appears once because the filter is a single predicate over tweets.
func (r *GormTweetRepository) Timeline(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Tweet, int64, error) {
	followed := r.db.Model(&models.Follower{}).
		Select("user_id").
		Where("follower_id = ?", userID)

	query := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("tweets.user_id = ? OR tweets.user_id IN (?)", userID, followed).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []models.Tweet
	if err := query.
		Scopes(withTweetRelations, database.Newest("tweets"), database.Paginate(params)).
		Find(&tweets).Error; err != nil {
		return nil, 0, err
	}

	return tweets, total, nil
}

// Delete removes a tweet together with its replies and favorites
func (r *GormTweetRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}

		if err := tx.Where("tweet_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Tweet{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
