package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertUser inserts the user or, on id conflict, overwrites only the fields that are set.
func (r *PostgresUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(nonEmptyUserColumns(user)),
	}).Create(user).Error
	if err != nil {
		return apperrors.Store("upsert user", err)
	}
	return nil
}

func nonEmptyUserColumns(u *models.User) []string {
	var cols []string
	for col, v := range map[string]string{
		"name":         u.Name,
		"email":        u.Email,
		"phone":        u.Phone,
		"photo_url":    u.PhotoURL,
		"display_name": u.DisplayName,
		"company":      u.Company,
		"role":         u.Role,
	} {
		if v != "" {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	return append(cols, "updated_at")
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store("get user", err)
	}
	return &user, nil
}

// GetUsers retrieves all users from PostgreSQL
func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "name", "display_name").Find(&users).Error; err != nil {
		return nil, apperrors.Store("list users", err)
	}
	return users, nil
}
