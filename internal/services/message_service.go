package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/chatid"
	"github.com/reloc/community-backend/internal/fanout"
	"github.com/reloc/community-backend/internal/metrics"
	"github.com/reloc/community-backend/internal/models"
)

type messageStore interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetByParticipant(ctx context.Context, uid string) ([]models.Message, error)
	GetBetween(ctx context.Context, uidA, uidB string, postID *string) ([]models.Message, error)
}

type userLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type postLookup interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// MessageService stores direct messages and derives conversations from them.
type MessageService struct {
	messages  messageStore
	users     userLookup
	posts     postLookup
	publisher fanout.Publisher
	logger    zerolog.Logger
}

func NewMessageService(messages messageStore, users userLookup, posts postLookup, publisher fanout.Publisher, logger zerolog.Logger) *MessageService {
	return &MessageService{
		messages:  messages,
		users:     users,
		posts:     posts,
		publisher: publisher,
		logger:    logger,
	}
}

// SendMessage persists one message and then publishes its fan-out event.
// The event is published only after the row exists and cannot affect the result.
func (s *MessageService) SendMessage(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error) {
	switch {
	case req.SenderID == "":
		return nil, apperrors.Invalid("senderId is required")
	case req.ReceiverID == "":
		return nil, apperrors.Invalid("receiverId is required")
	case req.Content == "":
		return nil, apperrors.Invalid("content is required")
	}

	msg := &models.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Type:       req.Type,
	}
	if msg.Type == "" {
		msg.Type = models.DefaultMessageType
	}
	if req.PostID != nil && *req.PostID != "" {
		postID := *req.PostID
		msg.PostID = &postID
	}

	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	s.publisher.Publish(fanout.MessageSent(*msg))
	return msg, nil
}

// SendMessageToChat sends into the conversation named by chatID. Sender and
// receiver default to the chat's participants and must both belong to it.
func (s *MessageService) SendMessageToChat(ctx context.Context, chatID string, req models.ChatMessageRequest) (*models.Message, error) {
	first, _, err := chatid.Decode(chatID)
	if err != nil {
		return nil, err
	}

	sender := req.SenderID
	if sender == "" {
		sender = first
	}
	receiver := req.ReceiverID
	if receiver == "" {
		if receiver, err = chatid.Other(chatID, sender); err != nil {
			return nil, err
		}
	}
	if chatid.Encode(sender, receiver) != chatID {
		return nil, apperrors.Invalid(fmt.Sprintf("sender and receiver do not match chat %s", chatID))
	}

	return s.SendMessage(ctx, models.CreateMessageRequest{
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    req.Content,
		Type:       req.Type,
	})
}

// GetMessages returns the transcript between two users, oldest first,
// optionally restricted to messages about one post.
func (s *MessageService) GetMessages(ctx context.Context, uidA, uidB, postID string) ([]models.Message, error) {
	if uidA == "" {
		return nil, apperrors.Missing("userId")
	}
	if uidB == "" {
		return nil, apperrors.Missing("receiverId")
	}
	var filter *string
	if postID != "" {
		filter = &postID
	}
	return s.messages.GetBetween(ctx, uidA, uidB, filter)
}

// GetMessagesByChat returns the transcript of a chat id in chat shape.
func (s *MessageService) GetMessagesByChat(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	a, b, err := chatid.Decode(chatID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.GetBetween(ctx, a, b, nil)
	if err != nil {
		return nil, err
	}
	out := make([]models.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = m.ToChatMessage()
	}
	return out, nil
}

// ListConversations returns one conversation per peer of uid, most recently
// active first.
func (s *MessageService) ListConversations(ctx context.Context, uid string) ([]models.Conversation, error) {
	if uid == "" {
		return nil, apperrors.Missing("uid")
	}
	messages, err := s.messages.GetByParticipant(ctx, uid)
	if err != nil {
		return nil, err
	}

	latest := LatestPerPair(messages)
	peers := make(map[string]models.UserCompact, len(latest))
	conversations := make([]models.Conversation, 0, len(latest))
	for _, m := range latest {
		other := m.SenderID
		if other == uid {
			other = m.ReceiverID
		}
		peer, ok := peers[other]
		if !ok {
			peer = s.peer(ctx, other)
			peers[other] = peer
		}
		conversations = append(conversations, models.Conversation{
			ID:           chatid.Encode(uid, other),
			Participants: [2]string{uid, other},
			OtherUser:    peer,
			LastMessage:  m,
			Post:         s.postPreview(ctx, m.PostID),
			UpdatedAt:    m.CreatedAt,
		})
	}
	return conversations, nil
}

func (s *MessageService) peer(ctx context.Context, id string) models.UserCompact {
	fallback := models.UserCompact{ID: id, Name: "User " + id}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("conversation peer lookup failed")
		}
		return fallback
	}
	compact := user.ToCompact()
	if compact.Name == "" {
		compact.Name = fallback.Name
	}
	return compact
}

func (s *MessageService) postPreview(ctx context.Context, postID *string) *models.PostPreview {
	if postID == nil || s.posts == nil {
		return nil
	}
	post, err := s.posts.GetPostByID(ctx, *postID)
	if err != nil {
		return nil
	}
	return &models.PostPreview{ID: *postID, Content: post.Content}
}
