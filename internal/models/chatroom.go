package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom represents a persisted 1-on-1 conversation between two users.
// The participant pair is stored normalized (UserAID < UserBID), so exactly
// one row exists per unordered pair; the composite unique index enforces that
// even under concurrent creation.
type ChatRoom struct {
	// ID is the unique identifier for the chat room (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// UserAID is the lexicographically smaller participant ID.
	UserAID string `gorm:"type:text;not null;uniqueIndex:idx_room_pair" json:"userA"`
	// UserBID is the lexicographically larger participant ID.
	UserBID string `gorm:"type:text;not null;uniqueIndex:idx_room_pair" json:"userB"`
	// LastMessage is a short summary of the most recent message, shown in
	// the room list. Empty until the first message is sent.
	LastMessage string `gorm:"type:text" json:"lastMessage"`
	// IsActive indicates whether the room accepts new messages.
	IsActive bool `gorm:"default:true" json:"isActive"`
	// IsBlocked is set when the conversation has been blocked.
	IsBlocked bool `gorm:"default:false" json:"isBlocked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

// BeforeCreate generates a new UUID for the room if the ID is not set yet.
func (r *ChatRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether the given user is one of the two members.
func (r *ChatRoom) HasParticipant(userID string) bool {
	return r.UserAID == userID || r.UserBID == userID
}

// PeerOf returns the other participant's ID. The caller must have checked
// membership with HasParticipant first.
func (r *ChatRoom) PeerOf(userID string) string {
	if r.UserAID == userID {
		return r.UserBID
	}
	return r.UserAID
}

// NormalizePair orders two participant IDs so the same unordered pair always
// maps to the same (UserAID, UserBID) columns.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
