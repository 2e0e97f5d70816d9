package storage

import (
	"log"
	"time"

	"buildtobond/backend/internal/models"
)

// AppendMessage persists a new message. The message ID is filled in by the
// BeforeCreate hook.
func (s *Service) AppendMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetMessages returns the full ordered message log for a room, ascending by
// creation time. An unknown room yields an empty list, not an error.
func (s *Service) GetMessages(roomID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages for room %s: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}

// CountUnseen counts messages in the room the viewer has not seen yet.
func (s *Service) CountUnseen(roomID, viewerID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).
		Where("room_id = ? AND sender_id <> ? AND seen_status = ?", roomID, viewerID, false).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: Failed to count unseen messages for room %s: %v", roomID, err)
		return 0, err
	}
	return count, nil
}

// MarkSeen transitions every message in the room not authored by the viewer
// from unseen to seen, and returns exactly the IDs that transitioned. The
// single conditional UPDATE keeps the transition atomic per message, so a
// concurrent send in the same room never gets half-applied; re-invocation
// with nothing unseen returns an empty list.
func (s *Service) MarkSeen(roomID, viewerID string, asOf time.Time) ([]string, error) {
	const rawSQL = `
        UPDATE messages
        SET seen_status = true, seen_at = ?
        WHERE room_id = ? AND sender_id <> ? AND seen_status = false
        RETURNING id
    `

	var ids []string
	if err := s.DB.Raw(rawSQL, asOf, roomID, viewerID).Scan(&ids).Error; err != nil {
		log.Printf("ERROR: Failed to mark messages seen for room %s: %v", roomID, err)
		return nil, err
	}
	return ids, nil
}
