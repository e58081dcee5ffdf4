package handlers

import (
	"net/http"

	"github.com/avdev42/go-messenger/backend/internal/middleware"
	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles HTTP requests related to chat sessions
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/chats/initiate", h.Initiate)
	g.GET("/chats", h.List)
	g.GET("/chats/id", h.GetID)
	g.GET("/chats/:id", h.View)
	g.POST("/chats/:id/messages", h.SendMessage)
}

// Initiate opens a new chat with the addressee named in the body
func (h *ChatHandler) Initiate(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	var req models.InitiateChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.chatService.InitiateChat(c.Request().Context(), claims.UserID, req.Username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// List returns the authenticated user's chat summaries
func (h *ChatHandler) List(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	summaries, err := h.chatService.ListChats(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetID returns the id of the chat with the given counterpart, or an empty
// id when none exists. Never a 404: absence is a normal answer here.
func (h *ChatHandler) GetID(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing username query parameter")
	}

	id, err := h.chatService.GetChatID(c.Request().Context(), claims.UserID, username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

// View returns the full conversation adjusted to the authenticated viewer
func (h *ChatHandler) View(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	view, err := h.chatService.GetChatView(c.Request().Context(), claims.Username, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// SendMessage appends a message to the chat and refreshes its summary
func (h *ChatHandler) SendMessage(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chatService.SendMessage(c.Request().Context(), c.Param("id"), claims.UserID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}
