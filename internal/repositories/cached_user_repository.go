package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/models"
)

// CachedUserRepository keeps user lookups in Redis in front of another UserRepository.
// Redis failures are logged and fall through to the wrapped repository.
type CachedUserRepository struct {
	next   UserRepository
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedUserRepository {
	return &CachedUserRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func userCacheKey(id string) string {
	return "user:" + id
}

func (r *CachedUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	if err := r.next.UpsertUser(ctx, user); err != nil {
		return err
	}
	if err := r.client.Del(ctx, userCacheKey(user.ID)).Err(); err != nil {
		r.logger.Warn().Err(err).Str("user_id", user.ID).Msg("user cache invalidation failed")
	}
	return nil
}

func (r *CachedUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	raw, err := r.client.Get(ctx, userCacheKey(id)).Bytes()
	switch {
	case err == nil:
		var user models.User
		if jsonErr := json.Unmarshal(raw, &user); jsonErr == nil {
			return &user, nil
		}
	case !errors.Is(err, redis.Nil):
		r.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
	}

	user, err := r.next.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, jsonErr := json.Marshal(user); jsonErr == nil {
		if setErr := r.client.Set(ctx, userCacheKey(id), raw, r.ttl).Err(); setErr != nil {
			r.logger.Warn().Err(setErr).Str("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}

func (r *CachedUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	return r.next.GetUsers(ctx)
}
