package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"gorm.io/gorm"
)

// FavoriteService handles favoriting tweets
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	tweetRepo    repository.TweetRepository
	publisher    events.Publisher
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, tweetRepo repository.TweetRepository, publisher events.Publisher) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		tweetRepo:    tweetRepo,
		publisher:    publisher,
	}
}

// Favorite marks a tweet as favorited by the actor. Repeating it returns the
// existing favorite. The returned favorite carries the tweet with its relations.
func (s *FavoriteService) Favorite(ctx context.Context, actorID, tweetID uint64) (*models.Favorite, error) {
	if _, err := s.tweetRepo.FindByID(ctx, tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to find tweet: %w", err)
	}

	favorite, created, err := s.favoriteRepo.FindOrCreate(ctx, actorID, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to favorite tweet: %w", err)
	}

	tweet, err := s.tweetRepo.FindWithRelations(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tweet: %w", err)
	}
	favorite.Tweet = *tweet

	if created {
		publish(ctx, s.publisher, events.SubjectFavoriteCreated, events.FavoriteEvent{
			TweetID:   tweetID,
			UserID:    actorID,
			Timestamp: favorite.CreatedAt,
		})
	}

	return favorite, nil
}

// UnFavorite removes the actor's favorite of the tweet
func (s *FavoriteService) UnFavorite(ctx context.Context, actorID, tweetID uint64) error {
	removed, err := s.favoriteRepo.Delete(ctx, actorID, tweetID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if removed == 0 {
		return ErrFavoriteNotFound
	}

	publish(ctx, s.publisher, events.SubjectFavoriteDeleted, events.FavoriteEvent{
		TweetID:   tweetID,
		UserID:    actorID,
		Timestamp: time.Now(),
	})

	return nil
}
