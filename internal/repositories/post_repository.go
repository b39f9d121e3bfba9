package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context, postType string, skip, limit int64) ([]models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error)
	SetLikesCount(ctx context.Context, postID string, count int64) error
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return apperrors.Store("create post", err)
	}
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", id, apperrors.ErrNotFound)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store("get post", err)
	}
	return &post, nil
}

// GetPosts retrieves posts newest first, optionally restricted to one type
func (r *MongoPostRepository) GetPosts(ctx context.Context, postType string, skip, limit int64) ([]models.Post, error) {
	filter := bson.M{}
	if postType != "" {
		filter["type"] = postType
	}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

// GetPostsByIDs retrieves the posts that still exist among ids, in no particular order
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	if len(objIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, options.Find())
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Store("find posts", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, apperrors.Store("decode posts", err)
	}
	return posts, nil
}

// SetLikesCount stores a freshly computed likes count on the post
func (r *MongoPostRepository) SetLikesCount(ctx context.Context, postID string, count int64) error {
	return r.update(ctx, postID, bson.M{"$set": bson.M{"likes_count": count, "updated_at": time.Now()}})
}

// IncrementCommentsCount increments the comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	return r.update(ctx, postID, bson.M{"$inc": bson.M{"comments_count": 1}})
}

func (r *MongoPostRepository) update(ctx context.Context, postID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("post %q: %w", postID, apperrors.ErrNotFound)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return apperrors.Store("update post", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", postID, apperrors.ErrNotFound)
	}
	return nil
}
