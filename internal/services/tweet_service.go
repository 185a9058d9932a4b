package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"gorm.io/gorm"
)

// TweetService handles tweet and reply business logic
type TweetService struct {
	tweetRepo repository.TweetRepository
	replyRepo repository.ReplyRepository
	publisher events.Publisher
}

// NewTweetService creates a new TweetService
func NewTweetService(tweetRepo repository.TweetRepository, replyRepo repository.ReplyRepository, publisher events.Publisher) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		replyRepo: replyRepo,
		publisher: publisher,
	}
}

// Tweet posts a tweet for the actor and returns it with its relations loaded
func (s *TweetService) Tweet(ctx context.Context, actorID uint64, body string) (*models.Tweet, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrTweetRequired
	}
	if utf8.RuneCountInString(body) > constants.MaxTweetLength {
		return nil, ErrTweetTooLong
	}

	tweet := &models.Tweet{
		UserID: actorID,
		Body:   body,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	created, err := s.tweetRepo.FindWithRelations(ctx, tweet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tweet: %w", err)
	}

	publish(ctx, s.publisher, events.SubjectTweetCreated, events.TweetEvent{
		TweetID:   created.ID,
		UserID:    actorID,
		Tweet:     created.Body,
		Timestamp: created.CreatedAt,
	})

	return created, nil
}

// Show returns a tweet with its author, replies and favorites
func (s *TweetService) Show(ctx context.Context, id uint64) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.FindWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to find tweet: %w", err)
	}
	return tweet, nil
}

// Reply adds a reply to an existing tweet
func (s *TweetService) Reply(ctx context.Context, actorID, tweetID uint64, body string) (*models.Reply, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrReplyRequired
	}

	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to find tweet: %w", err)
	}

	reply := &models.Reply{
		UserID:  actorID,
		TweetID: tweet.ID,
		Body:    body,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	created, err := s.replyRepo.FindByID(ctx, reply.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reply: %w", err)
	}

	publish(ctx, s.publisher, events.SubjectReplyCreated, events.ReplyEvent{
		ReplyID:    created.ID,
		TweetID:    tweet.ID,
		TweetOwner: tweet.UserID,
		UserID:     actorID,
		Timestamp:  created.CreatedAt,
	})

	return created, nil
}

// Destroy deletes one of the actor's tweets. A tweet owned by someone else is
// reported exactly like a missing one.
func (s *TweetService) Destroy(ctx context.Context, actorID, id uint64) error {
	tweet, err := s.tweetRepo.FindOwned(ctx, id, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return fmt.Errorf("failed to find tweet: %w", err)
	}

	if err := s.tweetRepo.Delete(ctx, tweet.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	publish(ctx, s.publisher, events.SubjectTweetDeleted, events.TweetEvent{
		TweetID:   tweet.ID,
		UserID:    actorID,
		Timestamp: time.Now(),
	})

	return nil
}
