package chat

import (
	"fmt"
	"time"

	"buildtobond/backend/internal/models"
)

// RoomView is what a viewer gets back when opening a room.
type RoomView struct {
	Messages []models.Message    `json:"messages"`
	Peer     *models.UserSummary `json:"peer,omitempty"`
}

// OpenRoom returns the room's ordered history and, as a side effect, marks
// every message from the other participant as seen. If anything transitioned
// and the peer is reachable, they get a single messages_seen event carrying
// all transitioned IDs. Seen is terminal; reopening a room with nothing
// unseen transitions nothing and emits nothing.
func (s *Service) OpenRoom(viewerID, roomID string) (*RoomView, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewerID) {
		return nil, fmt.Errorf("%w: user %s is not a participant of room %s", models.ErrForbidden, viewerID, roomID)
	}

	// The conditional update is the authoritative transition; it returns
	// exactly the set of IDs that flipped, so a send racing this call is
	// either fully included or fully excluded, never half-counted.
	transitioned, err := s.Storage.MarkSeen(roomID, viewerID, time.Now())
	if err != nil {
		return nil, err
	}

	messages, err := s.Storage.GetMessages(roomID)
	if err != nil {
		return nil, err
	}

	peerID := room.PeerOf(viewerID)
	if len(transitioned) > 0 && s.Realtime.IsOnline(peerID) {
		s.Realtime.EmitToUser(peerID, models.Event{
			Type:       models.EventMessagesSeen,
			RoomID:     roomID,
			SeenBy:     viewerID,
			MessageIDs: transitioned,
		})
	}

	return &RoomView{
		Messages: messages,
		Peer:     s.peerSummary(peerID),
	}, nil
}
