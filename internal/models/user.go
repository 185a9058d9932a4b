package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(512);not null" json:"name"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(60);not null" json:"-"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	WebsiteURL   *string   `gorm:"type:varchar(60)" json:"website_url"`
	Location     *string   `gorm:"type:varchar(60)" json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tweets    []Tweet    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Replies   []Reply    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
