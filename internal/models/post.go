package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a community post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"` // author
	Content       string             `json:"content" bson:"content"`
	Type          string             `json:"type" bson:"type"`
	MediaURL      string             `json:"media_url,omitempty" bson:"media_url,omitempty"`
	LikesCount    int64              `json:"likes" bson:"likes_count"`
	CommentsCount int64              `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	UID      string `json:"uid" validate:"required"`
	Content  string `json:"content" validate:"required_without=MediaURL,max=5000"`
	Type     string `json:"type" validate:"required,max=30"`
	MediaURL string `json:"media_url" validate:"omitempty,url"`
}

// PostActionRequest is the body of like/save toggles.
type PostActionRequest struct {
	UserID string `json:"userId" validate:"required"`
}
