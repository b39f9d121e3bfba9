package repositories

import (
	"context"
	"errors"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationSettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error)
	UpsertSettings(ctx context.Context, settings *models.NotificationSettings) error
}

type PostgresNotificationSettingsRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationSettingsRepository(db *gorm.DB) *PostgresNotificationSettingsRepository {
	return &PostgresNotificationSettingsRepository{db: db}
}

func (r *PostgresNotificationSettingsRepository) GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Store("get notification settings", err)
	}
	return &settings, nil
}

// UpsertSettings writes every preference column, including false values.
func (r *PostgresNotificationSettingsRepository) UpsertSettings(ctx context.Context, settings *models.NotificationSettings) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"push", "email", "sms"}),
	}).Select("*").Create(settings).Error
	if err != nil {
		return apperrors.Store("upsert notification settings", err)
	}
	return nil
}
