package handlers

import (
	"errors"
	"net/http"

	"github.com/avdev42/go-messenger/backend/internal/middleware"
	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves the authenticated user together with their profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
	}

	profile, err := h.profileRepository.GetProfileByUserID(user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load profile")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":    user,
		"profile": profile,
	})
}

// SearchUsers searches users by username substring
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing q query parameter")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search users")
	}

	usernames := make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user.Username)
	}
	return c.JSON(http.StatusOK, usernames)
}
