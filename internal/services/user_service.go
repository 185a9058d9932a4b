package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles users, profiles, the follow graph and the timeline
type UserService struct {
	userRepo     repository.UserRepository
	tweetRepo    repository.TweetRepository
	followerRepo repository.FollowerRepository
	favoriteRepo repository.FavoriteRepository
	publisher    events.Publisher
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	tweetRepo repository.TweetRepository,
	followerRepo repository.FollowerRepository,
	favoriteRepo repository.FavoriteRepository,
	publisher events.Publisher,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		tweetRepo:    tweetRepo,
		followerRepo: followerRepo,
		favoriteRepo: favoriteRepo,
		publisher:    publisher,
	}
}

// UpdateUserInput carries a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name       *string
	Username   *string
	Email      *string
	Password   *string
	Bio        *string
	WebsiteURL *string
	Location   *string
}

// Profile is a user with the collections shown on a profile page
type Profile struct {
	User      models.User
	Tweets    []models.Tweet
	Following []models.User
	Followers []models.User
	Favorites []models.Favorite
}

// Show returns a user by ID
func (s *UserService) Show(ctx context.Context, id uint64) (*models.User, error) {
	return s.findUser(ctx, id)
}

// Index returns a page of users
func (s *UserService) Index(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Update applies a partial update. Users may only update themselves; any other
// id is reported as not found.
func (s *UserService) Update(ctx context.Context, actorID, id uint64, input UpdateUserInput) (*models.User, error) {
	if actorID != id {
		return nil, ErrUserNotFound
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if username != user.Username {
			if err := ensureUsernameFree(ctx, s.userRepo, username); err != nil {
				return nil, err
			}
		}
		user.Username = username
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if err := ensureEmailFree(ctx, s.userRepo, email); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}

	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if input.Bio != nil {
		user.Bio = optionalText(input.Bio)
	}

	if input.WebsiteURL != nil {
		website := optionalText(input.WebsiteURL)
		if website != nil && len(*website) > maxWebsiteLength {
			return nil, ErrWebsiteTooLong
		}
		user.WebsiteURL = website
	}

	if input.Location != nil {
		location := optionalText(input.Location)
		if location != nil && len(*location) > maxLocationLength {
			return nil, ErrLocationTooLong
		}
		user.Location = location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateUserError(ctx, s.userRepo, user.Email)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateProfile applies a partial update to the current user
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint64, input UpdateUserInput) (*models.User, error) {
	return s.Update(ctx, actorID, actorID, input)
}

// Destroy deletes the user and everything the user owns. Self only.
func (s *UserService) Destroy(ctx context.Context, actorID, id uint64) error {
	if actorID != id {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Follow makes actorID follow targetID and returns the followed user.
// Following someone already followed is a no-op.
func (s *UserService) Follow(ctx context.Context, actorID, targetID uint64) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrCannotFollowSelf
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.followerRepo.Follow(ctx, actorID, targetID); err != nil {
		return nil, fmt.Errorf("failed to follow user: %w", err)
	}

	publish(ctx, s.publisher, events.SubjectUserFollowed, events.FollowEvent{
		UserID:     targetID,
		FollowerID: actorID,
		Timestamp:  time.Now(),
	})

	return target, nil
}

// UnFollow removes the follow edge from actorID to targetID
func (s *UserService) UnFollow(ctx context.Context, actorID, targetID uint64) error {
	if _, err := s.findUser(ctx, targetID); err != nil {
		return err
	}

	removed, err := s.followerRepo.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	if removed == 0 {
		return ErrNotFollowing
	}

	publish(ctx, s.publisher, events.SubjectUserUnfollowed, events.FollowEvent{
		UserID:     targetID,
		FollowerID: actorID,
		Timestamp:  time.Now(),
	})

	return nil
}

// Timeline returns tweets by the user and by everyone the user follows, newest first
func (s *UserService) Timeline(ctx context.Context, actorID uint64, params utils.PaginationParams) ([]models.Tweet, int64, error) {
	tweets, total, err := s.tweetRepo.Timeline(ctx, actorID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load timeline: %w", err)
	}
	return tweets, total, nil
}

// Me returns the current user's profile
func (s *UserService) Me(ctx context.Context, actorID uint64) (*Profile, error) {
	user, err := s.findUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.loadProfile(ctx, *user)
}

// ShowProfile returns the profile of the user with the given username
func (s *UserService) ShowProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.loadProfile(ctx, *user)
}

func (s *UserService) loadProfile(ctx context.Context, user models.User) (*Profile, error) {
	tweets, err := s.tweetRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tweets: %w", err)
	}

	following, err := s.followerRepo.Following(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}

	followers, err := s.followerRepo.Followers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	return &Profile{
		User:      user,
		Tweets:    tweets,
		Following: following,
		Followers: followers,
		Favorites: favorites,
	}, nil
}

func (s *UserService) findUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
