package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/models"
)

type postService interface {
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, postType string, limit, offset int64) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, int64, error)
	ToggleSave(ctx context.Context, postID, userID string) (bool, error)
	ListSaved(ctx context.Context, userID string) ([]models.Post, error)
}

// PostHandler handles posts, likes and saved posts
type PostHandler struct {
	posts postService
}

func NewPostHandler(posts postService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/saved", h.GetSavedPosts)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/save", h.ToggleSave)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	uid, err := callerID(c, req.UID)
	if err != nil {
		return err
	}
	req.UID = uid
	if c.Echo().Validator != nil {
		if err := c.Validate(&req); err != nil {
			return err
		}
	}

	post, err := h.posts.CreatePost(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, post)
}

// GetPosts lists posts newest first, optionally filtered by type
func (h *PostHandler) GetPosts(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)

	posts, err := h.posts.ListPosts(c.Request().Context(), c.QueryParam("type"), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, posts)
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	var req models.PostActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	uid, err := callerID(c, req.UserID)
	if err != nil {
		return err
	}
	liked, count, err := h.posts.ToggleLike(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"liked": liked, "likes": count})
}

func (h *PostHandler) ToggleSave(c echo.Context) error {
	var req models.PostActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	uid, err := callerID(c, req.UserID)
	if err != nil {
		return err
	}
	saved, err := h.posts.ToggleSave(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"saved": saved})
}

func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	uid, err := callerID(c, c.QueryParam("userId"))
	if err != nil {
		return err
	}
	posts, err := h.posts.ListSaved(c.Request().Context(), uid)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, posts)
}
