package models

import "time"

// Notification types produced by the fan-out.
const (
	NotificationTypeMessage = "message"
	NotificationTypeComment = "comment"
	NotificationTypePost    = "post"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:128;not null;index"`
	Type      string    `json:"type" gorm:"size:30;not null;index"` // message, comment, post, ...
	Title     string    `json:"title" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	PostID    *string   `json:"post_id" gorm:"size:64"`
	CommentID *uint     `json:"comment_id"`
	SenderID  *string   `json:"sender_id" gorm:"size:128"`
	Read      bool      `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateNotificationRequest defines the request body for creating a notification directly
type CreateNotificationRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	Type     string  `json:"type" validate:"required,max=30"`
	Title    string  `json:"title" validate:"required,max=255"`
	Message  string  `json:"message" validate:"required"`
	PostID   *string `json:"post_id"`
	SenderID *string `json:"sender_id"`
}

// NotificationSettings stores per-user delivery preferences.
type NotificationSettings struct {
	UserID string `json:"user_id" gorm:"primaryKey;size:128"`
	Push   bool   `json:"push" gorm:"not null;default:true"`
	Email  bool   `json:"email" gorm:"not null;default:true"`
	SMS    bool   `json:"sms" gorm:"not null;default:true"`
}

// DefaultNotificationSettings is returned for users that never saved preferences.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{UserID: userID, Push: true, Email: true, SMS: true}
}

// UpdateNotificationSettingsRequest defines the request body for saving preferences
type UpdateNotificationSettingsRequest struct {
	Push  *bool `json:"push" validate:"required"`
	Email *bool `json:"email" validate:"required"`
	SMS   *bool `json:"sms" validate:"required"`
}
