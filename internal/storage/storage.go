package storage

import (
	"context"
	"time"

	"buildtobond/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence contract for the chat core. Room and message
// state lives in PostgreSQL; behavioural counters live in Redis.
type Storage interface {
	// Rooms
	FindRoomByParticipants(userA, userB string) (*models.ChatRoom, error)
	CreateRoom(userA, userB string) (*models.ChatRoom, error)
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	GetRoomsForUser(userID string) ([]models.ChatRoom, error)
	UpdateRoomSummary(roomID, summary string) error
	SetRoomBlocked(roomID string, blocked bool) error
	SetRoomActive(roomID string, active bool) error

	// Messages
	AppendMessage(msg *models.Message) error
	GetMessages(roomID string) ([]models.Message, error)
	CountUnseen(roomID, viewerID string) (int64, error)
	MarkSeen(roomID, viewerID string, asOf time.Time) ([]string, error)

	// Users
	GetUserByID(userID string) (*models.User, error)

	// Behavioural counters, best effort. Failures are logged by callers
	// and never fail the parent operation.
	IncrementChatInitiation(userID string) error
	AccumulateChatLength(userID string, length int) error
}

// EventBus carries realtime events between server instances.
type EventBus interface {
	PublishEvent(env models.EventEnvelope) error
	SubscribeEvents() <-chan models.EventEnvelope
}

// Service implements Storage and EventBus on top of GORM and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
