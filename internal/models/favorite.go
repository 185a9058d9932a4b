package models

import "time"

// Favorite marks a tweet as liked by a user. A user favorites a tweet at most once.
type Favorite struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_tweet" json:"user_id"`
	TweetID   uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_tweet;index" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID" json:"tweet,omitempty"`
}
