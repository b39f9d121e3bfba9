package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/models"
)

type notificationService interface {
	CreateNotification(ctx context.Context, req models.CreateNotificationRequest) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error)
	UpdateSettings(ctx context.Context, userID string, push, email, sms bool) (*models.NotificationSettings, error)
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications notificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications notificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications", h.CreateNotification)
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.GET("/notifications/settings/:userId", h.GetSettings)
	g.PUT("/notifications/settings/:userId", h.UpdateSettings)
}

func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req models.CreateNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.notifications.CreateNotification(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, n)
}

// GetNotifications returns the user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	list, err := h.notifications.ListNotifications(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, list)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}
	n, err := h.notifications.MarkRead(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, n)
}

// MarkAllAsRead marks all notifications of a user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	updated, err := h.notifications.MarkAllRead(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"updated": updated})
}

func (h *NotificationHandler) GetSettings(c echo.Context) error {
	uid, err := callerID(c, c.Param("userId"))
	if err != nil {
		return err
	}
	settings, err := h.notifications.GetSettings(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, settings)
}

func (h *NotificationHandler) UpdateSettings(c echo.Context) error {
	var req models.UpdateNotificationSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Push == nil || req.Email == nil || req.SMS == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "push, email and sms are required")
	}
	uid, err := callerID(c, c.Param("userId"))
	if err != nil {
		return err
	}
	settings, err := h.notifications.UpdateSettings(c.Request().Context(), uid, *req.Push, *req.Email, *req.SMS)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, settings)
}
