package models

import "time"

type Reply struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	TweetID   uint64    `gorm:"not null;index" json:"tweet_id"`
	Body      string    `gorm:"column:reply;type:text;not null" json:"reply"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID" json:"tweet,omitempty"`
}
