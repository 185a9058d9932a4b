package repository

import (
	"context"

	"github.com/yukikurage/twitter-clone-api/internal/database"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users ordered by ID
func (r *GormUserRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update persists every column of the user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user, their follow edges, favorites, replies and tweets in one transaction.
// Favorites and replies on the user's tweets are removed first so the cascade does not
// depend on the dialect enforcing foreign keys.
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? OR follower_id = ?", id, id).Delete(&models.Follower{}).Error; err != nil {
			return err
		}

		ownTweets := tx.Model(&models.Tweet{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("user_id = ? OR tweet_id IN (?)", id, ownTweets).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR tweet_id IN (?)", id, ownTweets).Delete(&models.Reply{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Tweet{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
