package models

import "time"

// Conversation is derived from the messages table; it is never stored.
type Conversation struct {
	ID           string       `json:"id"`
	Participants [2]string    `json:"participants"`
	OtherUser    UserCompact  `json:"otherUser"`
	LastMessage  Message      `json:"lastMessage"`
	Post         *PostPreview `json:"post,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PostPreview is the optional post context attached to a conversation.
type PostPreview struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
