package handlers

import (
	"net/http"
	"strconv"

	"github.com/avdev42/go-messenger/backend/internal/middleware"
	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendRequestHandler handles HTTP requests related to the friend-request
// lifecycle
type FriendRequestHandler struct {
	friendService *services.FriendService
}

// NewFriendRequestHandler creates a new FriendRequestHandler
func NewFriendRequestHandler(friendService *services.FriendService) *FriendRequestHandler {
	return &FriendRequestHandler{friendService: friendService}
}

// RegisterFriendRequestRoutes registers friend-request routes
func (h *FriendRequestHandler) RegisterFriendRequestRoutes(g *echo.Group) {
	g.POST("/friend-requests/create", h.Create)
	g.GET("/friend-requests/accepted", h.Accepted)
	g.GET("/friend-requests/incoming", h.Incoming)
	g.GET("/friend-requests/sent", h.Sent)
	g.GET("/friend-requests/rejected", h.Rejected)
	g.GET("/friend-requests/find", h.Network)
	g.PATCH("/friend-requests/accept", h.Accept)
	g.PATCH("/friend-requests/reject", h.Reject)
	g.PATCH("/friend-requests/unfriend", h.Unfriend)
	g.DELETE("/friend-requests/cancel", h.Cancel)
}

func (h *FriendRequestHandler) bindBody(c echo.Context) (*models.SendFriendRequestBody, error) {
	var body models.SendFriendRequestBody
	if err := c.Bind(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&body); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &body, nil
}

// Create handles sending a friend request
func (h *FriendRequestHandler) Create(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	body, err := h.bindBody(c)
	if err != nil {
		return err
	}

	request, err := h.friendService.SendRequest(c.Request().Context(), claims.UserID, body.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, request)
}

// Accepted lists the authenticated user's friends
func (h *FriendRequestHandler) Accepted(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	usernames, err := h.friendService.ListAccepted(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, usernames)
}

// Incoming lists users with a pending request to the authenticated user
func (h *FriendRequestHandler) Incoming(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	usernames, err := h.friendService.ListIncoming(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, usernames)
}

// Sent lists users the authenticated user has a pending request out to
func (h *FriendRequestHandler) Sent(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	usernames, err := h.friendService.ListSent(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, usernames)
}

// Rejected lists users whose requests the authenticated user rejected
func (h *FriendRequestHandler) Rejected(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	usernames, err := h.friendService.ListRejected(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, usernames)
}

// Network lists one page of all other users annotated with their relation to
// the authenticated user
func (h *FriendRequestHandler) Network(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	network, err := h.friendService.Network(c.Request().Context(), claims.UserID, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, network)
}

// Accept handles accepting a pending friend request
func (h *FriendRequestHandler) Accept(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	body, err := h.bindBody(c)
	if err != nil {
		return err
	}

	if err := h.friendService.Accept(c.Request().Context(), claims.Username, body.Username); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Reject handles rejecting a pending friend request
func (h *FriendRequestHandler) Reject(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	body, err := h.bindBody(c)
	if err != nil {
		return err
	}

	if err := h.friendService.Reject(c.Request().Context(), claims.Username, body.Username); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Unfriend handles removing an accepted friendship
func (h *FriendRequestHandler) Unfriend(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	body, err := h.bindBody(c)
	if err != nil {
		return err
	}

	if err := h.friendService.Unfriend(c.Request().Context(), claims.UserID, body.Username); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Cancel handles withdrawing a pending friend request sent by the
// authenticated user
func (h *FriendRequestHandler) Cancel(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	body, err := h.bindBody(c)
	if err != nil {
		return err
	}

	if err := h.friendService.Cancel(c.Request().Context(), claims.Username, body.Username); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
