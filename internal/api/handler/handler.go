package handler

import (
	"buildtobond/backend/internal/chat"
	"buildtobond/backend/internal/chathub"
)

// Handler wires the HTTP surface to the chat service and the connection hub.
type Handler struct {
	Chat      *chat.Service
	Hub       *chathub.ManagerService
	jwtSecret []byte
}

func NewHandler(chatSvc *chat.Service, hub *chathub.ManagerService, jwtSecret []byte) *Handler {
	return &Handler{
		Chat:      chatSvc,
		Hub:       hub,
		jwtSecret: jwtSecret,
	}
}
