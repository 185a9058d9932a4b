package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/twitter-clone-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Newest orders tweets newest first with the id as a tiebreaker.
func Newest(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
