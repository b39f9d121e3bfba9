package services

import (
	"context"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
)

type userStore interface {
	UpsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type UserService struct {
	users userStore
}

func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

// SyncUser upserts the client's view of a user and returns the merged row.
func (s *UserService) SyncUser(ctx context.Context, req models.SyncUserRequest) (*models.User, error) {
	if req.ID == "" {
		return nil, apperrors.Missing("id")
	}
	if err := s.users.UpsertUser(ctx, req.ToUser()); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, req.ID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, apperrors.Missing("id")
	}
	return s.users.GetUserByID(ctx, id)
}
