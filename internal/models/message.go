package models

import "time"

// DefaultMessageType is used when a message is sent without an explicit type.
const DefaultMessageType = "text"

// Message is a direct message between two users. Rows are never updated.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   string    `json:"sender_id" gorm:"size:128;not null;index"`
	ReceiverID string    `json:"receiver_id" gorm:"size:128;not null;index"`
	PostID     *string   `json:"post_id" gorm:"size:64;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Type       string    `json:"type" gorm:"size:20;not null;default:text"`
	IsSeen     bool      `json:"is_seen" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// Before reports whether m sorts before o in the (created_at, id) order.
func (m Message) Before(o Message) bool {
	if !m.CreatedAt.Equal(o.CreatedAt) {
		return m.CreatedAt.Before(o.CreatedAt)
	}
	return m.ID < o.ID
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	SenderID   string  `json:"senderId" validate:"required"`
	ReceiverID string  `json:"receiverId" validate:"required"`
	PostID     *string `json:"post_id"`
	Content    string  `json:"content" validate:"required"`
	Type       string  `json:"type"`
}

// ChatMessageRequest defines the request body for sending into an existing chat id.
// Sender and receiver default to the participants encoded in the chat id.
type ChatMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content" validate:"required"`
	Type       string `json:"type"`
}

// ChatMessage is the transcript shape returned for chat-id lookups.
type ChatMessage struct {
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Timestamp  time.Time `json:"timestamp"`
	IsSeen     bool      `json:"isSeen"`
}

// ToChatMessage maps a stored message to the chat transcript shape.
func (m Message) ToChatMessage() ChatMessage {
	t := m.Type
	if t == "" {
		t = DefaultMessageType
	}
	return ChatMessage{
		Content:    m.Content,
		Type:       t,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Timestamp:  m.CreatedAt,
		IsSeen:     m.IsSeen,
	}
}
