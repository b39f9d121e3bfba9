package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/models"
)

type commentService interface {
	AddComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*models.CommentNode, error)
	DeleteComment(ctx context.Context, id uint) error
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments commentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments commentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:postId/comments", h.CreateComment)
	g.GET("/posts/:postId/comments", h.GetCommentsByPostID)
	g.DELETE("/posts/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment or reply on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	uid, err := callerID(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = uid

	comment, err := h.comments.AddComment(c.Request().Context(), c.Param("postId"), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, comment)
}

// GetCommentsByPostID returns the comment tree of a post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	tree, err := h.comments.ListComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, tree)
}

// DeleteComment deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	if err := h.comments.DeleteComment(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
