package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/models"
)

type userService interface {
	SyncUser(ctx context.Context, req models.SyncUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type UserHandler struct {
	users userService
}

func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/sync", h.SyncUser)
	g.GET("/users/:id", h.GetUser)
}

// SyncUser upserts the caller's profile from the client.
func (h *UserHandler) SyncUser(c echo.Context) error {
	var req models.SyncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	uid, err := callerID(c, req.ID)
	if err != nil {
		return err
	}
	req.ID = uid
	if c.Echo().Validator != nil {
		if err := c.Validate(&req); err != nil {
			return err
		}
	}

	user, err := h.users.SyncUser(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, user)
}
