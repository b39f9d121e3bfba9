package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return apperrors.Store("create notification", err)
	}
	return nil
}

func (r *postgresNotificationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Store("list notifications", err)
	}
	return notifications, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Store("count unread notifications", err)
	}
	return count, nil
}

// MarkAsRead sets read unconditionally, so repeating it is a no-op that still succeeds.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint) (*models.Notification, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("read", true)
	if res.Error != nil {
		return nil, apperrors.Store("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("notification %d: %w", notificationID, apperrors.ErrNotFound)
	}

	var notification models.Notification
	if err := db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %d: %w", notificationID, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store("load notification", err)
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, apperrors.Store("mark all notifications read", res.Error)
	}
	return res.RowsAffected, nil
}
