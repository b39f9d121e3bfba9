package repositories

import (
	"context"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message storage.
// Messages are append-only: there is no update or delete.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetByParticipant(ctx context.Context, uid string) ([]models.Message, error)
	GetBetween(ctx context.Context, uidA, uidB string, postID *string) ([]models.Message, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage inserts a message; ID and CreatedAt are filled in on success.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return apperrors.Store("create message", err)
	}
	return nil
}

// GetByParticipant returns every message uid sent or received, newest first.
func (r *PostgresMessageRepository) GetByParticipant(ctx context.Context, uid string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Store("list messages by participant", err)
	}
	return messages, nil
}

// GetBetween returns the transcript between two users in both directions, oldest first.
func (r *PostgresMessageRepository) GetBetween(ctx context.Context, uidA, uidB string, postID *string) ([]models.Message, error) {
	var messages []models.Message
	q := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", uidA, uidB, uidB, uidA)
	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, apperrors.Store("list messages between users", err)
	}
	return messages, nil
}
