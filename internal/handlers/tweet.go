package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/dto"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"github.com/yukikurage/twitter-clone-api/internal/services"
)

type TweetHandler struct {
	tweetService *services.TweetService
}

func NewTweetHandler(tweetService *services.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
	}
}

// Tweet posts a new tweet
func (h *TweetHandler) Tweet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type TweetRequest struct {
		Tweet string `json:"tweet"`
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	tweet, err := h.tweetService.Tweet(c.Request.Context(), userID, req.Tweet)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Created(c, "Tweet created", dto.ToTweetDTO(*tweet))
}

// Show returns a tweet with its author, replies and favorites
func (h *TweetHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tweet, err := h.tweetService.Show(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "", dto.ToTweetDTO(*tweet))
}

// Reply adds a reply to the tweet in the path
func (h *TweetHandler) Reply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	type ReplyRequest struct {
		Reply string `json:"reply"`
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err)
		return
	}

	reply, err := h.tweetService.Reply(c.Request.Context(), userID, id, req.Reply)
	if err != nil {
		respondError(c, err)
		return
	}

	apierrors.Created(c, "Reply created", dto.ToReplyDTO(*reply))
}

// Destroy deletes one of the current user's tweets
func (h *TweetHandler) Destroy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.tweetService.Destroy(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	apierrors.Success(c, "Tweet deleted", nil)
}
