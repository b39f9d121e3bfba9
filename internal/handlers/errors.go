package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/chatid"
	"github.com/reloc/community-backend/internal/middleware"
)

// httpError maps a service error onto an echo HTTP error.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMalformedIdentifier):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// bindAndValidate binds the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// callerID resolves the acting user. With authentication on, the verified
// Firebase UID is authoritative and an explicit id naming someone else is
// rejected with 403. Without authentication the explicit id is used as given.
func callerID(c echo.Context, explicit string) (string, error) {
	uid, _ := c.Get(middleware.ContextUIDKey).(string)
	if uid == "" {
		return explicit, nil
	}
	if explicit != "" && explicit != uid {
		return "", echo.NewHTTPError(http.StatusForbidden, "cannot act on behalf of another user")
	}
	return uid, nil
}

// requireChatMember rejects authenticated callers that are not a participant of chatID.
func requireChatMember(c echo.Context, chatID string) error {
	uid, _ := c.Get(middleware.ContextUIDKey).(string)
	if uid == "" {
		return nil
	}
	a, b, err := chatid.Decode(chatID)
	if err != nil {
		return httpError(err)
	}
	if uid != a && uid != b {
		return echo.NewHTTPError(http.StatusForbidden, "not a participant of this chat")
	}
	return nil
}
