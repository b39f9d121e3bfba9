package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
)

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "photo_url"}).AddRow("u1", "Ann", "https://img/a.png"))

	u, err := repo.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_GetUsersStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(`SELECT "id","name","display_name" FROM "users"`).WillReturnError(errors.New("timeout"))

	_, err := repo.GetUsers(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestNonEmptyUserColumns(t *testing.T) {
	cols := nonEmptyUserColumns(&models.User{ID: "u1", Name: "Ann", PhotoURL: "x", Role: "user"})
	assert.Equal(t, []string{"name", "photo_url", "role", "updated_at"}, cols)
}

type countingUsers struct {
	gets int
}

func (c *countingUsers) UpsertUser(context.Context, *models.User) error { return nil }

func (c *countingUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	c.gets++
	return &models.User{ID: id, Name: "Ann"}, nil
}

func (c *countingUsers) GetUsers(context.Context) ([]models.User, error) { return nil, nil }

func TestCachedUserRepository_FallsThroughWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingUsers{}
	repo := NewCachedUserRepository(next, client, time.Minute, zerolog.Nop())

	u, err := repo.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, 1, next.gets)

	assert.NoError(t, repo.UpsertUser(context.Background(), &models.User{ID: "u1"}))
}
