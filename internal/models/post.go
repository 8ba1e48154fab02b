package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a feed post. The author's name and avatar are denormalized
// onto the row at creation time so the feed renders without joins; they are
// a snapshot and do not follow later account changes.
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Text         string         `gorm:"type:text;not null" json:"text"`
	AuthorName   string         `json:"name"`
	AuthorAvatar string         `json:"avatar"`
	Likes        []Like         `gorm:"foreignKey:PostID" json:"likes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
