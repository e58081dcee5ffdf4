package handlers

import (
	"errors"
	"net/http"

	"github.com/avdev42/go-messenger/backend/internal/services"
	"github.com/avdev42/go-messenger/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error to a distinct HTTP response so clients can
// render a specific message per condition. Anything outside the domain
// taxonomy is logged and reported as an opaque 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrSelfRequest):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	case errors.Is(err, services.ErrSelfChat):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot start a chat with yourself")
	case errors.Is(err, services.ErrDuplicateRequest):
		return echo.NewHTTPError(http.StatusConflict, "A pending friend request already exists between these users")
	case errors.Is(err, services.ErrChatAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, "A chat between these users already exists")
	case errors.Is(err, services.ErrRequestNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
	case errors.Is(err, services.ErrNotFriends):
		return echo.NewHTTPError(http.StatusBadRequest, "Users are not friends")
	case errors.Is(err, services.ErrChatNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Chat not found")
	default:
		logger.Log.WithError(err).Error("unhandled service error")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
