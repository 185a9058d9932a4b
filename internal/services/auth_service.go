package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"github.com/yukikurage/twitter-clone-api/internal/repository"
	"github.com/yukikurage/twitter-clone-api/internal/token"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	denylist token.Denylist
}

// NewAuthService creates a new AuthService. A nil denylist disables revocation.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, denylist token.Denylist) *AuthService {
	if denylist == nil {
		denylist = token.NopDenylist{}
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		denylist: denylist,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Signup creates a new user and issues an access token.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, *token.Token, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	if err := validateName(name); err != nil {
		return nil, nil, err
	}
	if err := validateUsername(username); err != nil {
		return nil, nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	if err := ensureUsernameFree(ctx, s.userRepo, username); err != nil {
		return nil, nil, err
	}
	if err := ensureEmailFree(ctx, s.userRepo, email); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, duplicateUserError(ctx, s.userRepo, email)
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tok, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, *token.Token, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !checkPassword(user.PasswordHash, input.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, tok, nil
}

// Authenticate verifies a bearer token and checks it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		slog.WarnContext(ctx, "token revocation check failed", "error", err)
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes a token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ChangePassword replaces the user's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !checkPassword(user.PasswordHash, current) {
		return ErrIncorrectPassword
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hashedPassword, err := hashPassword(next)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UserExists reports whether the user behind a token or session still exists.
func (s *AuthService) UserExists(ctx context.Context, id uint64) (bool, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func ensureUsernameFree(ctx context.Context, repo repository.UserRepository, username string) error {
	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func ensureEmailFree(ctx context.Context, repo repository.UserRepository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

// duplicateUserError resolves which unique index rejected a concurrent insert.
func duplicateUserError(ctx context.Context, repo repository.UserRepository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
