package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message types.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Delivery states. A message is persisted as "sent"; "delivered" and "failed"
// are reserved for the client-side lifecycle.
const (
	DeliveredStatusSending   = "sending"
	DeliveredStatusSent      = "sent"
	DeliveredStatusDelivered = "delivered"
	DeliveredStatusFailed    = "failed"
)

// Message is one entry in a room's ordered message log. The body (Text or
// ImageURL, exactly one, matching MessageType) is immutable after creation;
// only the seen fields ever change, and only from unseen to seen.
type Message struct {
	ID       string `gorm:"primaryKey" json:"id"`
	RoomID   string `gorm:"type:text;not null;index:idx_room_created" json:"roomId"`
	SenderID string `gorm:"type:text;not null;index" json:"sender"`

	Text     string `gorm:"type:text" json:"message,omitempty"`
	ImageURL string `gorm:"type:text" json:"imageUrl,omitempty"`
	// MessageType is "text" or "image".
	MessageType string `gorm:"type:text;not null" json:"messageType"`

	// SeenStatus is true once the non-author participant has viewed the
	// message. SeenAt is set if and only if SeenStatus is true.
	SeenStatus bool       `gorm:"default:false" json:"seenStatus"`
	SeenAt     *time.Time `json:"seenAt,omitempty"`
	// DeliveredStatus is one of the DeliveredStatus* constants.
	DeliveredStatus string `gorm:"type:text;not null" json:"deliveredStatus"`

	CreatedAt time.Time `gorm:"index:idx_room_created" json:"createdAt"`
}

// BeforeCreate generates a new UUID for the message if the ID is not set yet.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
