package models

import "time"

// Follower is a directed edge: FollowerID follows UserID.
type Follower struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_followers_user_follower" json:"user_id"`
	FollowerID uint64    `gorm:"not null;uniqueIndex:idx_followers_user_follower;index" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Followed     User `gorm:"foreignKey:UserID" json:"-"`
	FollowerUser User `gorm:"foreignKey:FollowerID" json:"-"`
}
