package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/twitter-clone-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	return NewPaginationParams(page, limit)
}

// NewPaginationParams clamps page and limit to the allowed range.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	// keep the offset from overflowing
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewPaginationResponse builds the metadata for a page of total items.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
