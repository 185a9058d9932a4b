// Package token issues and verifies bearer access tokens and tracks revoked ones.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "twitter-clone-api"
	// TypeBearer is reported to clients alongside the token value.
	TypeBearer = "bearer"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of an access token. The subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// Token is an issued access token.
type Token struct {
	Type      string    `json:"type"`
	Value     string    `json:"token"`
	ID        string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager handles token creation and verification.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager signing with HS256.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate creates a signed access token for the user.
func (m *Manager) Generate(userID uint64) (*Token, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	id := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		Type:      TypeBearer,
		Value:     signed,
		ID:        id,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
