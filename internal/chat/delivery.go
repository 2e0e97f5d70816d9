package chat

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"buildtobond/backend/internal/models"
)

// ImageSummaryLabel is the fixed room-list summary for image messages.
const ImageSummaryLabel = "[photo]"

// SendMessage persists one outgoing message and fans it out to reachable
// connections. The returned message carries the seen state decided at
// creation time: a peer actively viewing the room sees the message
// immediately, so it is stored already seen.
//
// Emission is best-effort and never fails the call; once the message is
// persisted the caller gets it back.
func (s *Service) SendMessage(senderID, roomID, text, imageURL string) (*models.Message, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(senderID) {
		return nil, fmt.Errorf("%w: user %s is not a participant of room %s", models.ErrForbidden, senderID, roomID)
	}
	if room.IsBlocked {
		return nil, fmt.Errorf("%w: room %s is blocked", models.ErrForbidden, roomID)
	}
	if !room.IsActive {
		return nil, fmt.Errorf("%w: room %s is deactivated", models.ErrForbidden, roomID)
	}

	text = strings.TrimSpace(text)
	if text == "" && imageURL == "" {
		return nil, fmt.Errorf("%w: message needs text or an image", models.ErrValidation)
	}
	if text != "" && imageURL != "" {
		return nil, fmt.Errorf("%w: message cannot carry both text and an image", models.ErrValidation)
	}

	peerID := room.PeerOf(senderID)
	peerInRoom := s.Realtime.UserInRoom(peerID, roomID)

	msg := &models.Message{
		RoomID:          roomID,
		SenderID:        senderID,
		Text:            text,
		ImageURL:        imageURL,
		MessageType:     models.MessageTypeText,
		SeenStatus:      peerInRoom,
		DeliveredStatus: models.DeliveredStatusSent,
	}
	if imageURL != "" {
		msg.MessageType = models.MessageTypeImage
	}
	if peerInRoom {
		now := time.Now()
		msg.SeenAt = &now
	}

	if err := s.Storage.AppendMessage(msg); err != nil {
		return nil, err
	}

	summary := msg.Text
	if msg.MessageType == models.MessageTypeImage {
		summary = ImageSummaryLabel
	}
	if err := s.Storage.UpdateRoomSummary(roomID, summary); err != nil {
		return nil, err
	}

	s.recordBehaviour(room, msg)

	ev := models.Event{Type: models.EventNewMessage, RoomID: roomID, Message: msg}
	s.Realtime.EmitToRoom(roomID, ev)
	if !peerInRoom {
		// Peer may be online without having the room open.
		s.Realtime.EmitToUser(peerID, ev)
	}
	if !s.Realtime.UserInRoom(senderID, roomID) {
		// Sender echo for a connection that is not room-joined.
		s.Realtime.EmitToUser(senderID, ev)
	}
	if peerInRoom {
		// The sender's UI learns the message was seen without polling.
		s.Realtime.EmitToUser(senderID, models.Event{
			Type:       models.EventMessagesSeen,
			RoomID:     roomID,
			SeenBy:     peerID,
			MessageIDs: []string{msg.ID},
		})
	}

	return msg, nil
}

// recordBehaviour feeds the sender's behavioural counters. Failures are
// logged and swallowed; counters never fail a send.
func (s *Service) recordBehaviour(room *models.ChatRoom, msg *models.Message) {
	if room.LastMessage == "" {
		// First message ever recorded for this room.
		if err := s.Storage.IncrementChatInitiation(msg.SenderID); err != nil {
			log.Printf("WARNING: Failed to record chat initiation for user %s: %v", msg.SenderID, err)
		}
	}
	if msg.MessageType == models.MessageTypeText {
		// Length in runes, not bytes, so non-ASCII text weighs the same.
		if err := s.Storage.AccumulateChatLength(msg.SenderID, utf8.RuneCountInString(msg.Text)); err != nil {
			log.Printf("WARNING: Failed to record chat length for user %s: %v", msg.SenderID, err)
		}
	}
}
