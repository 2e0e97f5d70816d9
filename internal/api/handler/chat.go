package handler

import (
	"errors"
	"log"
	"net/http"

	"buildtobond/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

type sendMessageRequest struct {
	RoomID   string `json:"roomId" binding:"required"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

// CreateRoom opens (or returns) the room between the caller and a peer.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiverId is required"})
		return
	}

	room, err := h.Chat.CreateRoom(currentUserID(c), req.ReceiverID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": room})
}

// ListRooms returns the caller's conversations, most recent first.
func (h *Handler) ListRooms(c *gin.Context) {
	listings, err := h.Chat.ListRooms(currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": listings})
}

// SendMessage persists and delivers one message.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
		return
	}

	msg, err := h.Chat.SendMessage(currentUserID(c), req.RoomID, req.Text, req.ImageURL)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

// GetRoomMessages returns a room's history. Opening the room marks the
// peer's messages as seen as a side effect.
func (h *Handler) GetRoomMessages(c *gin.Context) {
	view, err := h.Chat.OpenRoom(currentUserID(c), c.Param("roomId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// renderError maps the error taxonomy onto HTTP status codes. Anything
// unclassified is an internal error and is not echoed to the client.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Unclassified error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
