package services

import (
	"context"
	"errors"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
)

type notificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type settingsStore interface {
	GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error)
	UpsertSettings(ctx context.Context, settings *models.NotificationSettings) error
}

type NotificationService struct {
	notifications notificationStore
	settings      settingsStore
}

func NewNotificationService(notifications notificationStore, settings settingsStore) *NotificationService {
	return &NotificationService{notifications: notifications, settings: settings}
}

// CreateNotification stores a notification supplied directly by a client.
func (s *NotificationService) CreateNotification(ctx context.Context, req models.CreateNotificationRequest) (*models.Notification, error) {
	switch {
	case req.UserID == "":
		return nil, apperrors.Invalid("user_id is required")
	case req.Type == "":
		return nil, apperrors.Invalid("type is required")
	case req.Title == "":
		return nil, apperrors.Invalid("title is required")
	case req.Message == "":
		return nil, apperrors.Invalid("message is required")
	}

	n := &models.Notification{
		UserID:   req.UserID,
		Type:     req.Type,
		Title:    req.Title,
		Message:  req.Message,
		PostID:   req.PostID,
		SenderID: req.SenderID,
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, apperrors.Missing("user_id")
	}
	return s.notifications.GetByUserID(ctx, userID)
}

// MarkRead flips read to true. Marking an already-read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	if id == 0 {
		return nil, apperrors.Missing("id")
	}
	return s.notifications.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.Missing("user_id")
	}
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, apperrors.Missing("user_id")
	}
	return s.notifications.GetUnreadCount(ctx, userID)
}

// GetSettings returns stored preferences, or the defaults when none were saved.
func (s *NotificationService) GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	if userID == "" {
		return nil, apperrors.Missing("userId")
	}
	settings, err := s.settings.GetSettings(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		defaults := models.DefaultNotificationSettings(userID)
		return &defaults, nil
	}
	return settings, err
}

func (s *NotificationService) UpdateSettings(ctx context.Context, userID string, push, email, sms bool) (*models.NotificationSettings, error) {
	if userID == "" {
		return nil, apperrors.Missing("userId")
	}
	settings := &models.NotificationSettings{UserID: userID, Push: push, Email: email, SMS: sms}
	if err := s.settings.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
