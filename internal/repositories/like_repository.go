package repositories

import (
	"context"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID string) error
	GetLikesCountByPostID(ctx context.Context, postID string) (int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return apperrors.Store("create like", err)
	}
	return nil
}

func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{}).Error
	if err != nil {
		return apperrors.Store("delete like", err)
	}
	return nil
}

func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count likes", err)
	}
	return count, nil
}

func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	if err != nil {
		return false, apperrors.Store("check like", err)
	}
	return count > 0, nil
}
