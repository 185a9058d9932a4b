package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/twitter-clone-api/internal/errors"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Home greets API clients
func (h *HealthHandler) Home(c *gin.Context) {
	apierrors.Success(c, "Twitter Clone API is running", nil)
}

// Health reports whether the database is reachable
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		apierrors.RespondWithError(c, http.StatusServiceUnavailable, apierrors.ErrCodeInternalError, "Database unavailable", err)
		return
	}

	apierrors.Success(c, "ok", nil)
}
