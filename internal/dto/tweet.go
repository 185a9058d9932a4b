package dto

import (
	"time"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
)

// ReplyDTO represents a reply in API responses
type ReplyDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	TweetID   uint64    `json:"tweet_id"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *UserDTO  `json:"user,omitempty"`
}

// FavoriteDTO represents a favorite. Tweet is set only when the favorite is
// listed on its own, not when nested inside the tweet it points to.
type FavoriteDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	TweetID   uint64    `json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tweet     *TweetDTO `json:"tweet,omitempty"`
}

// TweetDTO represents a tweet with its author, replies and favorites
type TweetDTO struct {
	ID        uint64        `json:"id"`
	UserID    uint64        `json:"user_id"`
	Tweet     string        `json:"tweet"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	User      *UserDTO      `json:"user,omitempty"`
	Replies   []ReplyDTO    `json:"replies"`
	Favorites []FavoriteDTO `json:"favorites"`
}

// TimelineResponse represents a page of the home timeline
type TimelineResponse struct {
	Tweets     []TweetDTO               `json:"tweets"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToReplyDTO converts a Reply model to ReplyDTO
func ToReplyDTO(reply models.Reply) ReplyDTO {
	dto := ReplyDTO{
		ID:        reply.ID,
		UserID:    reply.UserID,
		TweetID:   reply.TweetID,
		Reply:     reply.Body,
		CreatedAt: reply.CreatedAt,
		UpdatedAt: reply.UpdatedAt,
	}

	// Include author if preloaded
	if reply.User.ID != 0 {
		author := ToUserDTO(reply.User)
		dto.User = &author
	}

	return dto
}

// ToFavoriteDTO converts a Favorite model, including its tweet if preloaded
func ToFavoriteDTO(favorite models.Favorite) FavoriteDTO {
	dto := toFavoriteDTO(favorite)

	if favorite.Tweet.ID != 0 {
		tweet := ToTweetDTO(favorite.Tweet)
		dto.Tweet = &tweet
	}

	return dto
}

func toFavoriteDTO(favorite models.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:        favorite.ID,
		UserID:    favorite.UserID,
		TweetID:   favorite.TweetID,
		CreatedAt: favorite.CreatedAt,
		UpdatedAt: favorite.UpdatedAt,
	}
}

func ToFavoriteDTOs(favorites []models.Favorite) []FavoriteDTO {
	dtos := make([]FavoriteDTO, len(favorites))
	for i, favorite := range favorites {
		dtos[i] = ToFavoriteDTO(favorite)
	}
	return dtos
}

// ToTweetDTO converts a Tweet model to TweetDTO. Replies and favorites are
// always present, empty when the tweet has none.
func ToTweetDTO(tweet models.Tweet) TweetDTO {
	dto := TweetDTO{
		ID:        tweet.ID,
		UserID:    tweet.UserID,
		Tweet:     tweet.Body,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
		Replies:   make([]ReplyDTO, len(tweet.Replies)),
		Favorites: make([]FavoriteDTO, len(tweet.Favorites)),
	}

	if tweet.User.ID != 0 {
		author := ToUserDTO(tweet.User)
		dto.User = &author
	}

	for i, reply := range tweet.Replies {
		dto.Replies[i] = ToReplyDTO(reply)
	}
	for i, favorite := range tweet.Favorites {
		dto.Favorites[i] = toFavoriteDTO(favorite)
	}

	return dto
}

func ToTweetDTOs(tweets []models.Tweet) []TweetDTO {
	dtos := make([]TweetDTO, len(tweets))
	for i, tweet := range tweets {
		dtos[i] = ToTweetDTO(tweet)
	}
	return dtos
}

func ToTimelineResponse(tweets []models.Tweet, params utils.PaginationParams, total int64) TimelineResponse {
	return TimelineResponse{
		Tweets:     ToTweetDTOs(tweets),
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
