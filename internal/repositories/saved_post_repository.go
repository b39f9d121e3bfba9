package repositories

import (
	"context"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, savedPost *models.SavedPost) error
	UnsavePost(ctx context.Context, userID, postID string) error
	IsPostSaved(ctx context.Context, userID, postID string) (bool, error)
	GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, savedPost *models.SavedPost) error {
	if err := r.db.WithContext(ctx).Create(savedPost).Error; err != nil {
		return apperrors.Store("save post", err)
	}
	return nil
}

func (r *PostgresSavedPostRepository) UnsavePost(ctx context.Context, userID, postID string) error {
	err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{}).Error
	if err != nil {
		return apperrors.Store("unsave post", err)
	}
	return nil
}

func (r *PostgresSavedPostRepository) IsPostSaved(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, apperrors.Store("check saved post", err)
	}
	return count > 0, nil
}

// GetSavedPostsByUser returns the user's saves, most recent first.
func (r *PostgresSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error; err != nil {
		return nil, apperrors.Store("list saved posts", err)
	}
	return saved, nil
}
