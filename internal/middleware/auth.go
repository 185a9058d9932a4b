package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/token"
)

// Authenticator verifies bearer tokens and confirms the user behind them
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*token.Claims, error)
	UserExists(ctx context.Context, userID uint64) (bool, error)
}

// RequireAuth resolves the current user from a bearer token, falling back to
// the session cookie. Requests with neither are rejected with 401.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			claims, err := auth.Authenticate(c.Request.Context(), raw)
			if err != nil {
				apierrors.Unauthorized(c, err.Error())
				c.Abort()
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				apierrors.Unauthorized(c, "")
				c.Abort()
				return
			}

			if !requireUser(c, auth, userID) {
				return
			}

			c.Set(constants.ContextKeyTokenID, claims.ID)
			if claims.ExpiresAt != nil {
				c.Set(constants.ContextKeyTokenExpiry, claims.ExpiresAt.Time)
			}
			setUserID(c, userID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)
		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		id, ok := GetUserID(c)
		if !ok {
			slog.WarnContext(c.Request.Context(), "session holds an unexpected user id", "value", userID)
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !requireUser(c, auth, id) {
			return
		}

		setUserID(c, id)
		c.Next()
	}
}

// requireUser rejects credentials whose user has since been deleted.
func requireUser(c *gin.Context, auth Authenticator, userID uint64) bool {
	exists, err := auth.UserExists(c.Request.Context(), userID)
	if err != nil {
		apierrors.InternalError(c, "", err)
		c.Abort()
		return false
	}
	if !exists {
		apierrors.Unauthorized(c, "User no longer exists")
		c.Abort()
		return false
	}
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// setUserID stores the user in the gin context and in the request context so
// that context-aware logging picks it up.
func setUserID(c *gin.Context, userID uint64) {
	c.Set(constants.ContextKeyUserID, userID)
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetToken returns the ID and expiry of the bearer token used for the request,
// if any.
func GetToken(c *gin.Context) (string, time.Time, bool) {
	id := c.GetString(constants.ContextKeyTokenID)
	if id == "" {
		return "", time.Time{}, false
	}
	return id, c.GetTime(constants.ContextKeyTokenExpiry), true
}
