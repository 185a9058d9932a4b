package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/dto"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/services"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Create favorites tweet_id for the current user
func (h *FavoriteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type FavoriteRequest struct {
		TweetID uint64 `json:"tweet_id" binding:"required"`
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	favorite, err := h.favoriteService.Favorite(c.Request.Context(), userID, req.TweetID)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Created(c, "Tweet favorited", dto.ToFavoriteDTO(*favorite))
}

// Destroy removes the current user's favorite of the tweet in the path
func (h *FavoriteHandler) Destroy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tweetID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.UnFavorite(c.Request.Context(), userID, tweetID); err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Favorite removed", nil)
}
