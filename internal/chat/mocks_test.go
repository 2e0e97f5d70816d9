package chat_test

import (
	"time"

	"buildtobond/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

// Room operations
func (m *MockStorage) FindRoomByParticipants(userA, userB string) (*models.ChatRoom, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) CreateRoom(userA, userB string) (*models.ChatRoom, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetRoomsForUser(userID string) ([]models.ChatRoom, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatRoom), args.Error(1)
}

func (m *MockStorage) UpdateRoomSummary(roomID, summary string) error {
	args := m.Called(roomID, summary)
	return args.Error(0)
}

func (m *MockStorage) SetRoomBlocked(roomID string, blocked bool) error {
	args := m.Called(roomID, blocked)
	return args.Error(0)
}

func (m *MockStorage) SetRoomActive(roomID string, active bool) error {
	args := m.Called(roomID, active)
	return args.Error(0)
}

// Message operations
func (m *MockStorage) AppendMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessages(roomID string) ([]models.Message, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) CountUnseen(roomID, viewerID string) (int64, error) {
	args := m.Called(roomID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MarkSeen(roomID, viewerID string, asOf time.Time) ([]string, error) {
	args := m.Called(roomID, viewerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// User operations
func (m *MockStorage) GetUserByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Behaviour counters
func (m *MockStorage) IncrementChatInitiation(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) AccumulateChatLength(userID string, length int) error {
	args := m.Called(userID, length)
	return args.Error(0)
}

// MockRealtime is a mock implementation of the chat.Realtime interface.
type MockRealtime struct {
	mock.Mock
}

func (m *MockRealtime) UserInRoom(userID, roomID string) bool {
	args := m.Called(userID, roomID)
	return args.Bool(0)
}

func (m *MockRealtime) IsOnline(userID string) bool {
	args := m.Called(userID)
	return args.Bool(0)
}

func (m *MockRealtime) EmitToRoom(roomID string, ev models.Event) {
	m.Called(roomID, ev)
}

func (m *MockRealtime) EmitToUser(userID string, ev models.Event) {
	m.Called(userID, ev)
}

// eventOfType matches emitted events by type in expectations.
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == eventType
	})
}
