package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/fanout"
	"github.com/reloc/community-backend/internal/models"
)

type commentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type commentedPosts interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	IncrementCommentsCount(ctx context.Context, postID string) error
}

type CommentService struct {
	comments  commentStore
	posts     commentedPosts
	publisher fanout.Publisher
	logger    zerolog.Logger
}

func NewCommentService(comments commentStore, posts commentedPosts, publisher fanout.Publisher, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, publisher: publisher, logger: logger}
}

// AddComment stores a comment or reply on an existing post and notifies the post's author.
func (s *CommentService) AddComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	switch {
	case postID == "":
		return nil, apperrors.Invalid("post id is required")
	case req.UserID == "":
		return nil, apperrors.Invalid("user_id is required")
	case req.Content == "":
		return nil, apperrors.Invalid("content is required")
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		ParentID: req.ParentID,
		UserID:   req.UserID,
		Content:  req.Content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.posts.IncrementCommentsCount(ctx, postID); err != nil {
		s.logger.Warn().Err(err).Str("post_id", postID).Msg("comment counter not updated")
	}
	s.publisher.Publish(fanout.CommentAdded(*comment))
	return comment, nil
}

// ListComments returns the post's top-level comments with nested replies, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*models.CommentNode, error) {
	if postID == "" {
		return nil, apperrors.Missing("postId")
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.Missing("id")
	}
	return s.comments.DeleteComment(ctx, id)
}

// BuildCommentTree nests replies under their parents, preserving input order.
// Replies whose parent is absent are dropped.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[uint]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{Comment: c, Replies: []*models.CommentNode{}}
	}

	roots := []*models.CommentNode{}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots
}
