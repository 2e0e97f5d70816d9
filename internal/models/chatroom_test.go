package models_test

import (
	"testing"

	"buildtobond/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePair_UnorderedIdentity(t *testing.T) {
	a1, b1 := models.NormalizePair("user_a", "user_b")
	a2, b2 := models.NormalizePair("user_b", "user_a")

	assert.Equal(t, a1, a2, "the same unordered pair must normalize identically")
	assert.Equal(t, b1, b2)
	assert.True(t, a1 < b1)
}

func TestChatRoomBeforeCreate_GeneratesUUID(t *testing.T) {
	room := &models.ChatRoom{UserAID: "user_a", UserBID: "user_b"}

	err := room.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, room.ID)
	_, parseErr := uuid.Parse(room.ID)
	assert.NoError(t, parseErr, "room ID must be a valid UUID string")
}

func TestChatRoomBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	room := &models.ChatRoom{ID: existingID, UserAID: "user_a", UserBID: "user_b"}

	err := room.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, room.ID)
}

func TestChatRoomParticipants(t *testing.T) {
	room := &models.ChatRoom{UserAID: "user_a", UserBID: "user_b"}

	assert.True(t, room.HasParticipant("user_a"))
	assert.True(t, room.HasParticipant("user_b"))
	assert.False(t, room.HasParticipant("user_c"))

	assert.Equal(t, "user_b", room.PeerOf("user_a"))
	assert.Equal(t, "user_a", room.PeerOf("user_b"))
}

func TestMessageBeforeCreate_GeneratesUUID(t *testing.T) {
	msg := &models.Message{RoomID: "room_1", SenderID: "user_a", Text: "hi"}

	err := msg.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	_, parseErr := uuid.Parse(msg.ID)
	assert.NoError(t, parseErr)
}

func TestUserSummaryProjection(t *testing.T) {
	user := &models.User{
		ID:        "user_a",
		FirstName: "Ann",
		LastName:  "Lee",
		AvatarURL: "https://cdn.example.com/ann.jpg",
	}

	s := user.Summary()

	assert.Equal(t, "user_a", s.ID)
	assert.Equal(t, "Ann", s.FirstName)
	assert.Equal(t, "Lee", s.LastName)
	assert.Equal(t, "https://cdn.example.com/ann.jpg", s.AvatarURL)
}
