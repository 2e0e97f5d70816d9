// Package chat implements the messaging core: room creation and listing,
// presence-aware message delivery, and seen-state reconciliation.
package chat

import (
	"buildtobond/backend/internal/models"
	"buildtobond/backend/internal/storage"
)

// Realtime is the narrow view of the connection hub the chat service needs.
// Emission is fire-and-forget: implementations must never block and their
// failures never surface to the caller.
type Realtime interface {
	// UserInRoom reports whether the user is online and actively viewing
	// the room, as opposed to merely being online.
	UserInRoom(userID, roomID string) bool
	// IsOnline reports whether the user has a live connection.
	IsOnline(userID string) bool
	// EmitToRoom pushes an event to every connection viewing the room.
	EmitToRoom(roomID string, ev models.Event)
	// EmitToUser pushes an event to the user's presence connection.
	EmitToUser(userID string, ev models.Event)
}

// Service handles the business logic for direct messaging.
type Service struct {
	Storage  storage.Storage
	Realtime Realtime
}

// NewService creates a new chat service.
func NewService(s storage.Storage, rt Realtime) *Service {
	return &Service{Storage: s, Realtime: rt}
}
