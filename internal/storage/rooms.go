package storage

import (
	"errors"
	"fmt"
	"log"

	"buildtobond/backend/internal/models"

	"gorm.io/gorm"
)

// FindRoomByParticipants looks up the room for an unordered participant pair.
// Returns (nil, nil) when no room exists for the pair.
func (s *Service) FindRoomByParticipants(userA, userB string) (*models.ChatRoom, error) {
	a, b := models.NormalizePair(userA, userB)

	var room models.ChatRoom
	err := s.DB.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to look up room for pair (%s, %s): %v", a, b, err)
		return nil, err
	}
	return &room, nil
}

// CreateRoom inserts a room for the pair. The unique index on the normalized
// pair makes concurrent creation race-tolerant: the loser gets ErrConflict
// and should fetch the winner's row.
func (s *Service) CreateRoom(userA, userB string) (*models.ChatRoom, error) {
	a, b := models.NormalizePair(userA, userB)

	room := &models.ChatRoom{
		UserAID:  a,
		UserBID:  b,
		IsActive: true,
	}
	if err := s.DB.Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: room for pair (%s, %s)", models.ErrConflict, a, b)
		}
		log.Printf("ERROR: Failed to create room for pair (%s, %s): %v", a, b, err)
		return nil, err
	}
	return room, nil
}

// GetRoomByID returns the room or ErrNotFound.
func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: room %s", models.ErrNotFound, roomID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// GetRoomsForUser returns every room the user participates in, most recently
// updated first.
func (s *Service) GetRoomsForUser(userID string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.DB.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&rooms).Error
	if err != nil {
		log.Printf("ERROR: Failed to list rooms for user %s: %v", userID, err)
		return nil, err
	}
	return rooms, nil
}

// UpdateRoomSummary sets the room's last-message summary and bumps updated_at.
// Called once per successful send.
func (s *Service) UpdateRoomSummary(roomID, summary string) error {
	return s.DB.Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"last_message": summary,
			"updated_at":   gorm.Expr("NOW()"),
		}).Error
}

// SetRoomBlocked flips the blocked flag on a room.
func (s *Service) SetRoomBlocked(roomID string, blocked bool) error {
	return s.roomFlagUpdate(roomID, "is_blocked", blocked)
}

// SetRoomActive flips the active flag on a room.
func (s *Service) SetRoomActive(roomID string, active bool) error {
	return s.roomFlagUpdate(roomID, "is_active", active)
}

func (s *Service) roomFlagUpdate(roomID, column string, value bool) error {
	res := s.DB.Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %s", models.ErrNotFound, roomID)
	}
	return nil
}

// GetUserByID returns the user profile or ErrNotFound.
func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, userID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", userID, err)
		return nil, err
	}
	return &user, nil
}
