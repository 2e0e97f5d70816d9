package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is the profile record referenced by rooms and messages. Registration
// and profile editing live outside this service; it only reads users to
// resolve peer summaries for the chat UI.
type User struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	FirstName string         `gorm:"type:text;not null" json:"firstName"`
	LastName  string         `gorm:"type:text" json:"lastName"`
	AvatarURL string         `gorm:"type:text" json:"profilePicture,omitempty"`
	Interests pq.StringArray `gorm:"type:text[]" json:"interests,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a new UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserSummary is the projection of a peer shown next to a conversation.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"profilePicture,omitempty"`
}

// Summary returns the display projection for the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}
