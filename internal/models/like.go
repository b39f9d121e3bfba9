package models

import "time"

// Like represents a like on a post
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:64;index;uniqueIndex:idx_post_user_like"`
	UserID    string    `json:"user_id" gorm:"size:128;index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
