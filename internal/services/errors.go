package services

import "errors"

// Not found
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTweetNotFound    = errors.New("tweet not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrNotFollowing     = errors.New("you do not follow this user")
)

// Authentication
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// Validation
var (
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameInvalid  = errors.New("username may only contain letters, numbers, underscores and hyphens")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrUsernameReserved = errors.New("username is reserved")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrWebsiteTooLong   = errors.New("website url is too long")
	ErrLocationTooLong  = errors.New("location is too long")
	ErrTweetRequired    = errors.New("tweet is required")
	ErrTweetTooLong     = errors.New("tweet is too long")
	ErrReplyRequired    = errors.New("reply is required")
	ErrCannotFollowSelf = errors.New("you cannot follow yourself")
)

// Conflicts
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

var ErrFailedToHashPassword = errors.New("failed to hash password")
