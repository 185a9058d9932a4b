package models

import (
	"time"
)

type Tweet struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"column:tweet;type:text;not null" json:"tweet"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies   []Reply    `gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"replies,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"favorites,omitempty"`
}
