package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
	"github.com/yukikurage/twitter-clone-api/internal/dto"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/middleware"
	"github.com/yukikurage/twitter-clone-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user and logs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	user, tok, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session", err)
		return
	}

	apierrors.Created(c, "User created", dto.ToAuthDTO(*user, tok))
}

// Login authenticates a user, issues a bearer token and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	user, tok, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session", err)
		return
	}

	apierrors.Success(c, "Logged in", dto.ToAuthDTO(*user, tok))
}

// Logout revokes the bearer token and removes the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := endSession(c, h.authService); err != nil {
		apierrors.InternalError(c, "Failed to logout", err)
		return
	}

	apierrors.Success(c, "Logged out successfully", nil)
}

// ChangePassword replaces the current user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Password changed", nil)
}

func saveSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// endSession revokes the request's bearer token, if any, and clears the session.
func endSession(c *gin.Context, authService *services.AuthService) error {
	if tokenID, expiresAt, ok := middleware.GetToken(c); ok {
		if err := authService.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
			return err
		}
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
