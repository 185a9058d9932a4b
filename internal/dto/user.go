package dto

import (
	"time"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/token"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
)

// UserDTO represents a user in API responses. The password hash is never included.
type UserDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Bio        *string   `json:"bio"`
	WebsiteURL *string   `json:"website_url"`
	Location   *string   `json:"location"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileDTO is a user with their tweets, follow lists and favorites
type ProfileDTO struct {
	UserDTO
	Tweets    []TweetDTO    `json:"tweets"`
	Following []UserDTO     `json:"following"`
	Followers []UserDTO     `json:"followers"`
	Favorites []FavoriteDTO `json:"favorites"`
}

// TokenDTO describes an issued access token
type TokenDTO struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthDTO is returned by signup and login
type AuthDTO struct {
	User  UserDTO  `json:"user"`
	Token TokenDTO `json:"token"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Email:      user.Email,
		Bio:        user.Bio,
		WebsiteURL: user.WebsiteURL,
		Location:   user.Location,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToProfileDTO assembles a profile from its separately loaded parts
func ToProfileDTO(user models.User, tweets []models.Tweet, following, followers []models.User, favorites []models.Favorite) ProfileDTO {
	return ProfileDTO{
		UserDTO:   ToUserDTO(user),
		Tweets:    ToTweetDTOs(tweets),
		Following: ToUserDTOs(following),
		Followers: ToUserDTOs(followers),
		Favorites: ToFavoriteDTOs(favorites),
	}
}

func ToTokenDTO(tok *token.Token) TokenDTO {
	return TokenDTO{
		Type:      tok.Type,
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
	}
}

func ToAuthDTO(user models.User, tok *token.Token) AuthDTO {
	return AuthDTO{
		User:  ToUserDTO(user),
		Token: ToTokenDTO(tok),
	}
}

func ToUserListResponse(users []models.User, params utils.PaginationParams, total int64) UserListResponse {
	return UserListResponse{
		Users:      ToUserDTOs(users),
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
