// Package seed fills a database with fake users, tweets, replies, follows and
// favorites for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/events"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"github.com/yukikurage/twitter-clone-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with
const DefaultPassword = "password123"

var usernameStrip = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Options controls how much data is generated
type Options struct {
	Users         int
	TweetsPerUser int
	MaxReplies    int
	MaxFollows    int
	MaxFavorites  int
	Password      string
	// Seed makes the generated content reproducible; 0 picks a random seed.
	Seed int64
}

// DefaultOptions returns a small but connected data set
func DefaultOptions() Options {
	return Options{
		Users:         10,
		TweetsPerUser: 5,
		MaxReplies:    3,
		MaxFollows:    4,
		MaxFavorites:  5,
		Password:      DefaultPassword,
	}
}

// Result counts what was written
type Result struct {
	Users     int
	Tweets    int
	Replies   int
	Follows   int
	Favorites int
}

// Seeder writes fake data through the same services the API uses
type Seeder struct {
	faker     *gofakeit.Faker
	opts      Options
	userRepo  repository.UserRepository
	users     *services.UserService
	tweets    *services.TweetService
	favorites *services.FavoriteService
}

// NewSeeder creates a Seeder bound to db
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	publisher := events.NopPublisher{}

	return &Seeder{
		faker:     gofakeit.New(opts.Seed),
		opts:      opts,
		userRepo:  userRepo,
		users:     services.NewUserService(userRepo, tweetRepo, followerRepo, favoriteRepo, publisher),
		tweets:    services.NewTweetService(tweetRepo, replyRepo, publisher),
		favorites: services.NewFavoriteService(favoriteRepo, tweetRepo, publisher),
	}
}

// Run generates the data set
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user := s.buildUser(i, string(hash))
		if err := s.userRepo.Create(ctx, user); err != nil {
			return result, fmt.Errorf("failed to create user %s: %w", user.Username, err)
		}
		users = append(users, user)
		result.Users++
	}
	slog.InfoContext(ctx, "seeded users", "count", result.Users)

	var tweetIDs []uint64
	for _, user := range users {
		for i := 0; i < s.opts.TweetsPerUser; i++ {
			tweet, err := s.tweets.Tweet(ctx, user.ID, s.body())
			if err != nil {
				return result, fmt.Errorf("failed to create tweet: %w", err)
			}
			tweetIDs = append(tweetIDs, tweet.ID)
			result.Tweets++
		}
	}
	slog.InfoContext(ctx, "seeded tweets", "count", result.Tweets)

	if len(users) == 0 {
		return result, nil
	}

	for _, tweetID := range tweetIDs {
		for i := s.faker.Number(0, s.opts.MaxReplies); i > 0; i-- {
			author := users[s.faker.Number(0, len(users)-1)]
			if _, err := s.tweets.Reply(ctx, author.ID, tweetID, s.body()); err != nil {
				return result, fmt.Errorf("failed to create reply: %w", err)
			}
			result.Replies++
		}
	}

	for _, user := range users {
		for _, target := range s.pick(users, s.opts.MaxFollows) {
			if target.ID == user.ID {
				continue
			}
			if _, err := s.users.Follow(ctx, user.ID, target.ID); err != nil {
				return result, fmt.Errorf("failed to follow user: %w", err)
			}
			result.Follows++
		}

		for _, tweetID := range s.pickIDs(tweetIDs, s.opts.MaxFavorites) {
			if _, err := s.favorites.Favorite(ctx, user.ID, tweetID); err != nil {
				return result, fmt.Errorf("failed to favorite tweet: %w", err)
			}
			result.Favorites++
		}
	}
	slog.InfoContext(ctx, "seeded relations",
		"replies", result.Replies,
		"follows", result.Follows,
		"favorites", result.Favorites,
	)

	return result, nil
}

func (s *Seeder) buildUser(i int, passwordHash string) *models.User {
	username := usernameStrip.ReplaceAllString(s.faker.Username(), "")
	username = fmt.Sprintf("%s_%d", strings.ToLower(username), i)

	bio := s.faker.Sentence(8)
	location := truncate(s.faker.City(), 60)

	return &models.User{
		Name:         s.faker.Name(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		Bio:          &bio,
		Location:     &location,
	}
}

func (s *Seeder) body() string {
	return truncate(s.faker.Sentence(s.faker.Number(3, 20)), constants.MaxTweetLength)
}

// pick returns up to max distinct users in random order
func (s *Seeder) pick(users []*models.User, max int) []*models.User {
	n := s.faker.Number(0, max)
	if n > len(users) {
		n = len(users)
	}
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	s.faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}

func (s *Seeder) pickIDs(ids []uint64, max int) []uint64 {
	n := s.faker.Number(0, max)
	if n > len(ids) {
		n = len(ids)
	}
	shuffled := make([]uint64, len(ids))
	copy(shuffled, ids)
	s.faker.ShuffleAnySlice(shuffled)
	return shuffled[:n]
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
