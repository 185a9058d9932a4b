package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/middleware"
	"github.com/yukikurage/twitter-clone-api/internal/services"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTweetNotFound),
		errors.Is(err, services.ErrFavoriteNotFound),
		errors.Is(err, services.ErrNotFollowing):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrIncorrectPassword):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenRevoked):
		apierrors.Unauthorized(c, err.Error())

	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength), nil)
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at most %d bytes", constants.MaxPasswordBytes), nil)
	case errors.Is(err, services.ErrTweetTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Tweet must be at most %d characters", constants.MaxTweetLength), nil)
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrUsernameInvalid),
		errors.Is(err, services.ErrUsernameTooLong),
		errors.Is(err, services.ErrUsernameReserved),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrWebsiteTooLong),
		errors.Is(err, services.ErrLocationTooLong),
		errors.Is(err, services.ErrTweetRequired),
		errors.Is(err, services.ErrReplyRequired),
		errors.Is(err, services.ErrCannotFollowSelf):
		apierrors.BadRequest(c, err.Error(), nil)

	default:
		apierrors.InternalError(c, "", err)
	}
}

// currentUserID returns the authenticated user, writing a 401 when absent.
func currentUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// idParam parses a numeric path parameter, writing a 400 when invalid.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name), err)
		return 0, false
	}
	return id, true
}
