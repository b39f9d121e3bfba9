package models

import "time"

// Comment represents a comment on a post; ParentID makes it a reply.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:64;not null;index"` // MongoDB ObjectID as hex
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	UserID    string    `json:"user_id" gorm:"size:128;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CommentNode is a comment with its replies.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id"`
}
