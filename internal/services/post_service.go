package services

import (
	"context"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/fanout"
	"github.com/reloc/community-backend/internal/models"
)

const (
	defaultPostLimit = 20
	maxPostLimit     = 100
)

type postStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context, postType string, skip, limit int64) ([]models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string) ([]models.Post, error)
	SetLikesCount(ctx context.Context, postID string, count int64) error
}

type likeStore interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID string) error
	GetLikesCountByPostID(ctx context.Context, postID string) (int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
}

type savedPostStore interface {
	SavePost(ctx context.Context, savedPost *models.SavedPost) error
	UnsavePost(ctx context.Context, userID, postID string) error
	IsPostSaved(ctx context.Context, userID, postID string) (bool, error)
	GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error)
}

type PostService struct {
	posts     postStore
	likes     likeStore
	saved     savedPostStore
	publisher fanout.Publisher
}

func NewPostService(posts postStore, likes likeStore, saved savedPostStore, publisher fanout.Publisher) *PostService {
	return &PostService{posts: posts, likes: likes, saved: saved, publisher: publisher}
}

// CreatePost stores the post and then announces it to every other user.
func (s *PostService) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	switch {
	case req.UID == "":
		return nil, apperrors.Invalid("uid is required")
	case req.Content == "" && req.MediaURL == "":
		return nil, apperrors.Invalid("content or media is required")
	case req.Type == "":
		return nil, apperrors.Invalid("post type is required")
	}

	post := &models.Post{
		UserID:   req.UID,
		Content:  req.Content,
		Type:     req.Type,
		MediaURL: req.MediaURL,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.publisher.Publish(fanout.PostCreated(*post))
	return post, nil
}

// ListPosts returns posts newest first. limit is clamped to [1, 100], default 20.
func (s *PostService) ListPosts(ctx context.Context, postType string, limit, offset int64) ([]models.Post, error) {
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.posts.GetPosts(ctx, postType, offset, limit)
}

// ToggleLike likes or unlikes the post for userID and returns the new state and count.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (bool, int64, error) {
	if postID == "" || userID == "" {
		return false, 0, apperrors.Invalid("post id and user id are required")
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return false, 0, err
	}

	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}
	if liked {
		err = s.likes.DeleteLike(ctx, postID, userID)
	} else {
		err = s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID})
	}
	if err != nil {
		return false, 0, err
	}

	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	if err := s.posts.SetLikesCount(ctx, postID, count); err != nil {
		return false, 0, err
	}
	return !liked, count, nil
}

// ToggleSave bookmarks or un-bookmarks the post and returns whether it is now saved.
func (s *PostService) ToggleSave(ctx context.Context, postID, userID string) (bool, error) {
	if postID == "" || userID == "" {
		return false, apperrors.Invalid("post id and user id are required")
	}
	saved, err := s.saved.IsPostSaved(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if saved {
		return false, s.saved.UnsavePost(ctx, userID, postID)
	}
	if err := s.saved.SavePost(ctx, &models.SavedPost{UserID: userID, PostID: postID}); err != nil {
		return false, err
	}
	return true, nil
}

// ListSaved returns the user's saved posts, most recently saved first.
// Saves whose post no longer exists are skipped.
func (s *PostService) ListSaved(ctx context.Context, userID string) ([]models.Post, error) {
	if userID == "" {
		return nil, apperrors.Missing("userId")
	}
	saved, err := s.saved.GetSavedPostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return []models.Post{}, nil
	}

	ids := make([]string, len(saved))
	for i, sp := range saved {
		ids[i] = sp.PostID
	}
	posts, err := s.posts.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID.Hex()] = p
	}

	out := make([]models.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
