package repository

import (
	"context"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns a page of users ordered by ID together with the total count
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// Update persists every column of the user
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user together with everything the user owns
	Delete(ctx context.Context, id uint64) error
}

// TweetRepository defines the interface for tweet data access
type TweetRepository interface {
	// Create creates a new tweet
	Create(ctx context.Context, tweet *models.Tweet) error

	// FindByID finds a tweet without relations
	FindByID(ctx context.Context, id uint64) (*models.Tweet, error)

	// FindWithRelations loads a tweet with its author, replies (with authors) and favorites
	FindWithRelations(ctx context.Context, id uint64) (*models.Tweet, error)

	// FindOwned finds a tweet only if it belongs to userID
	FindOwned(ctx context.Context, id, userID uint64) (*models.Tweet, error)

	// ListByUser lists a user's tweets with relations, newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Tweet, error)

	// Timeline lists tweets by the user and everyone the user follows, newest first
	Timeline(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Tweet, int64, error)

	// Delete removes a tweet with its replies and favorites
	Delete(ctx context.Context, id uint64) error
}

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	// Create creates a new reply
	Create(ctx context.Context, reply *models.Reply) error

	// FindByID finds a reply with its author
	FindByID(ctx context.Context, id uint64) (*models.Reply, error)
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	// FindOrCreate returns the user's favorite of the tweet, creating it when absent.
	// The boolean reports whether a row was created.
	FindOrCreate(ctx context.Context, userID, tweetID uint64) (*models.Favorite, bool, error)

	// Delete removes the user's favorite of the tweet and reports the rows removed
	Delete(ctx context.Context, userID, tweetID uint64) (int64, error)

	// ListByUser lists a user's favorites with the tweet and the tweet's relations
	ListByUser(ctx context.Context, userID uint64) ([]models.Favorite, error)
}

// FollowerRepository defines the interface for follow edge data access
type FollowerRepository interface {
	// Follow records that followerID follows userID; repeated calls are no-ops
	Follow(ctx context.Context, followerID, userID uint64) error

	// Unfollow removes the edge and reports the rows removed
	Unfollow(ctx context.Context, followerID, userID uint64) (int64, error)

	// IsFollowing reports whether followerID follows userID
	IsFollowing(ctx context.Context, followerID, userID uint64) (bool, error)

	// Following lists the users that userID follows
	Following(ctx context.Context, userID uint64) ([]models.User, error)

	// Followers lists the users that follow userID
	Followers(ctx context.Context, userID uint64) ([]models.User, error)
}
