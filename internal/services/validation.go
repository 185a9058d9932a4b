package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

// Column limits of the users table
const (
	maxNameLength     = 512
	maxUsernameLength = 80
	maxEmailLength    = 254
	maxWebsiteLength  = 60
	maxLocationLength = 60
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// reservedUsernames are the first path segments of static routes. A profile
// under one of them would be shadowed by that route.
var reservedUsernames = map[string]struct{}{
	"account":   {},
	"favorites": {},
	"health":    {},
	"login":     {},
	"logout":    {},
	"metrics":   {},
	"tweet":     {},
	"tweets":    {},
	"users":     {},
}

// passwordHashCost is lowered in tests.
var passwordHashCost = bcrypt.DefaultCost

func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}
	if _, ok := reservedUsernames[strings.ToLower(username)]; ok {
		return ErrUsernameReserved
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > constants.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// normalizeEmail trims and lowercases so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optionalText trims a nullable column; blank clears it.
func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
