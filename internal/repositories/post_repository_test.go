package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
)

func TestMongoPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.posts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "user_id", Value: "author"},
			{Key: "content", Value: "hello"},
		}))

		post, err := NewMongoPostRepository(mt.DB).GetPostByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "author", post.UserID)
		assert.Equal(mt, id, post.ID)
	})

	mt.Run("missing post", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.posts", mtest.FirstBatch))

		_, err := NewMongoPostRepository(mt.DB).GetPostByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := NewMongoPostRepository(mt.DB).GetPostByID(context.Background(), "not-hex")
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := NewMongoPostRepository(mt.DB).SetLikesCount(context.Background(), primitive.NewObjectID().Hex(), 3)
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoPostRepository(mt.DB)

		post := newTestPost()
		require.NoError(mt, repo.CreatePost(context.Background(), post))
		assert.False(mt, post.ID.IsZero())
		assert.False(mt, post.CreatedAt.IsZero())
	})
}

func newTestPost() *models.Post {
	return &models.Post{UserID: "author", Content: "hello", Type: "general"}
}
