package repository

import (
	"context"

	"github.com/yukikurage/twitter-clone-api/internal/models"
	"gorm.io/gorm"
)

// GormReplyRepository is a GORM implementation of ReplyRepository
type GormReplyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &GormReplyRepository{db: db}
}

// Create creates a new reply
func (r *GormReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

// FindByID finds a reply with its author
func (r *GormReplyRepository) FindByID(ctx context.Context, id uint64) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("User").First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}
