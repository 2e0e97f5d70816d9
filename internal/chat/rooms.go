package chat

import (
	"errors"
	"fmt"
	"log"

	"buildtobond/backend/internal/models"
)

// RoomListing is one entry in a user's conversation list.
type RoomListing struct {
	Room        models.ChatRoom     `json:"room"`
	Peer        *models.UserSummary `json:"peer,omitempty"`
	UnseenCount int64               `json:"unseenCount"`
}

// CreateRoom returns the room shared by the requester and peer, creating it
// on first contact. createRoom(a,b) and createRoom(b,a) resolve to the same
// room, and concurrent first contacts converge on one row: the loser of the
// insert race fetches the winner's room.
func (s *Service) CreateRoom(requesterID, peerID string) (*models.ChatRoom, error) {
	if peerID == "" {
		return nil, fmt.Errorf("%w: peer ID is required", models.ErrValidation)
	}
	if peerID == requesterID {
		return nil, fmt.Errorf("%w: cannot open a room with yourself", models.ErrValidation)
	}
	if _, err := s.Storage.GetUserByID(peerID); err != nil {
		return nil, err
	}

	if room, err := s.Storage.FindRoomByParticipants(requesterID, peerID); err != nil {
		return nil, err
	} else if room != nil {
		return room, nil
	}

	room, err := s.Storage.CreateRoom(requesterID, peerID)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			// Lost the creation race; the winner's room is the room.
			if existing, ferr := s.Storage.FindRoomByParticipants(requesterID, peerID); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return room, nil
}

// ListRooms returns the user's conversations ordered by recency descending,
// each with the peer's display summary and the viewer's unseen count.
func (s *Service) ListRooms(userID string) ([]RoomListing, error) {
	rooms, err := s.Storage.GetRoomsForUser(userID)
	if err != nil {
		return nil, err
	}

	listings := make([]RoomListing, 0, len(rooms))
	for _, room := range rooms {
		unseen, err := s.Storage.CountUnseen(room.ID, userID)
		if err != nil {
			return nil, err
		}
		listings = append(listings, RoomListing{
			Room:        room,
			Peer:        s.peerSummary(room.PeerOf(userID)),
			UnseenCount: unseen,
		})
	}
	return listings, nil
}

// peerSummary resolves a peer's display projection. A missing or failing
// lookup degrades to nil rather than failing the parent read.
func (s *Service) peerSummary(userID string) *models.UserSummary {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		log.Printf("WARNING: Failed to resolve peer summary for user %s: %v", userID, err)
		return nil
	}
	return user.Summary()
}
