package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
)

type fakeNotifications struct {
	mu      sync.Mutex
	created []models.Notification
	failFor map[string]bool
	nextID  uint
}

func (f *fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[n.UserID] {
		return apperrors.Store("create notification", errors.New("insert failed"))
	}
	f.nextID++
	n.ID = f.nextID
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifications) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.created))
	for _, n := range f.created {
		out = append(out, n.UserID)
	}
	return out
}

type fakeUsers struct {
	users   []models.User
	listErr error
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
}

func (f *fakeUsers) GetUsers(context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

type fakePosts map[string]models.Post

func (f fakePosts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	return &p, nil
}
