package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/models"
)

type messageService interface {
	SendMessage(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error)
	SendMessageToChat(ctx context.Context, chatID string, req models.ChatMessageRequest) (*models.Message, error)
	GetMessages(ctx context.Context, uidA, uidB, postID string) ([]models.Message, error)
	GetMessagesByChat(ctx context.Context, chatID string) ([]models.ChatMessage, error)
	ListConversations(ctx context.Context, uid string) ([]models.Conversation, error)
}

// MessageHandler handles direct messages and conversation listings
type MessageHandler struct {
	messages messageService
}

func NewMessageHandler(messages messageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// RegisterMessageRoutes registers message routes. Static paths are registered before :chatId.
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages", h.GetMessages)
	g.GET("/messages/conversations", h.ListConversations)
	g.POST("/messages/:chatId/send", h.SendToChat)
	g.GET("/messages/:chatId", h.GetChat)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	sender, err := callerID(c, req.SenderID)
	if err != nil {
		return err
	}
	req.SenderID = sender

	msg, err := h.messages.SendMessage(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, msg)
}

func (h *MessageHandler) GetMessages(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("userId"))
	if err != nil {
		return err
	}
	msgs, err := h.messages.GetMessages(
		c.Request().Context(),
		uid,
		c.QueryParam("receiverId"),
		c.QueryParam("post_id"),
	)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, msgs)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("uid"))
	if err != nil {
		return err
	}
	convs, err := h.messages.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, convs)
}

func (h *MessageHandler) SendToChat(c echo.Context) error {
	var req models.ChatMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	sender, err := callerID(c, req.SenderID)
	if err != nil {
		return err
	}
	req.SenderID = sender
	if err := requireChatMember(c, c.Param("chatId")); err != nil {
		return err
	}

	msg, err := h.messages.SendMessageToChat(c.Request().Context(), c.Param("chatId"), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, msg.ToChatMessage())
}

func (h *MessageHandler) GetChat(c echo.Context) error {
	if err := requireChatMember(c, c.Param("chatId")); err != nil {
		return err
	}
	msgs, err := h.messages.GetMessagesByChat(c.Request().Context(), c.Param("chatId"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, msgs)
}
