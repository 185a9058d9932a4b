package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/dto"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/services"
	"github.com/yukikurage/twitter-clone-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// updateUserRequest fields are optional; omitted fields keep their value.
type updateUserRequest struct {
	Name       *string `json:"name"`
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Bio        *string `json:"bio"`
	WebsiteURL *string `json:"website_url"`
	Location   *string `json:"location"`
}

func (r updateUserRequest) input() services.UpdateUserInput {
	return services.UpdateUserInput{
		Name:       r.Name,
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		Bio:        r.Bio,
		WebsiteURL: r.WebsiteURL,
		Location:   r.Location,
	}
}

// Index lists users
func (h *UserHandler) Index(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.Index(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", dto.ToUserListResponse(users, params, total))
}

// Show returns a user by ID
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Show(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", dto.ToUserDTO(*user))
}

// Update applies a partial update to the user in the path, or to the current
// user when the path has no id.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := userID
	if c.Param("id") != "" {
		if id, ok = idParam(c, "id"); !ok {
			return
		}
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "User updated", dto.ToUserDTO(*user))
}

// UpdateProfile applies a partial update to the current user
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Profile updated", dto.ToUserDTO(*user))
}

// Destroy deletes the current user's account
func (h *UserHandler) Destroy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Destroy(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	if err := endSession(c, h.authService); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to end session of deleted user", "user_id", userID, "error", err)
	}

	apierrors.Success(c, "User deleted", nil)
}

// Follow makes the current user follow user_id
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type FollowRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	followed, err := h.userService.Follow(c.Request.Context(), userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Now following "+followed.Username, dto.ToUserDTO(*followed))
}

// UnFollow removes the current user's follow of the user in the path
func (h *UserHandler) UnFollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.UnFollow(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Unfollowed", nil)
}

// Timeline returns tweets by the current user and everyone they follow
func (h *UserHandler) Timeline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	tweets, total, err := h.userService.Timeline(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", dto.ToTimelineResponse(tweets, params, total))
}

// Me returns the current user's profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", toProfileDTO(profile))
}

// ShowProfile returns a profile by username
func (h *UserHandler) ShowProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		apierrors.NotFound(c, services.ErrUserNotFound.Error())
		return
	}

	profile, err := h.userService.ShowProfile(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", toProfileDTO(profile))
}

func toProfileDTO(p *services.Profile) dto.ProfileDTO {
	return dto.ToProfileDTO(p.User, p.Tweets, p.Following, p.Followers, p.Favorites)
}
