package chat_test

import (
	"errors"
	"testing"

	"buildtobond/backend/internal/chat"
	"buildtobond/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeRoom() *models.ChatRoom {
	return &models.ChatRoom{
		ID:       "room_1",
		UserAID:  "user_a",
		UserBID:  "user_b",
		IsActive: true,
	}
}

func TestSendMessage_PeerViewingRoom(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)
	rt.On("UserInRoom", "user_b", "room_1").Return(true)
	rt.On("UserInRoom", "user_a", "room_1").Return(true)

	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).ID = "msg_1"
		}).Return(nil)
	storageMock.On("UpdateRoomSummary", "room_1", "hi").Return(nil)
	storageMock.On("IncrementChatInitiation", "user_a").Return(nil)
	storageMock.On("AccumulateChatLength", "user_a", 2).Return(nil)
	rt.On("EmitToRoom", "room_1", eventOfType(models.EventNewMessage)).Return()
	rt.On("EmitToUser", "user_a", eventOfType(models.EventMessagesSeen)).Return()

	msg, err := svc.SendMessage("user_a", "room_1", "  hi ", "")

	assert.NoError(t, err)
	assert.True(t, msg.SeenStatus, "peer viewing the room means seen at creation")
	assert.NotNil(t, msg.SeenAt)
	assert.Equal(t, "hi", msg.Text, "text is trimmed before persistence")
	assert.Equal(t, models.MessageTypeText, msg.MessageType)
	assert.Equal(t, models.DeliveredStatusSent, msg.DeliveredStatus)

	rt.AssertCalled(t, "EmitToUser", "user_a", mock.MatchedBy(func(ev models.Event) bool {
		return ev.Type == models.EventMessagesSeen &&
			ev.SeenBy == "user_b" &&
			len(ev.MessageIDs) == 1 && ev.MessageIDs[0] == "msg_1"
	}))
}

func TestSendMessage_PeerNotViewing(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)
	rt.On("UserInRoom", "user_b", "room_1").Return(false)
	rt.On("UserInRoom", "user_a", "room_1").Return(false)

	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	storageMock.On("UpdateRoomSummary", "room_1", "hello").Return(nil)
	storageMock.On("IncrementChatInitiation", "user_a").Return(nil)
	storageMock.On("AccumulateChatLength", "user_a", 5).Return(nil)
	rt.On("EmitToRoom", "room_1", eventOfType(models.EventNewMessage)).Return()
	rt.On("EmitToUser", mock.Anything, eventOfType(models.EventNewMessage)).Return()

	msg, err := svc.SendMessage("user_a", "room_1", "hello", "")

	assert.NoError(t, err)
	assert.False(t, msg.SeenStatus)
	assert.Nil(t, msg.SeenAt, "seenAt is set if and only if seenStatus is true")

	// Peer gets the presence-connection copy, sender gets the echo.
	rt.AssertCalled(t, "EmitToUser", "user_b", eventOfType(models.EventNewMessage))
	rt.AssertCalled(t, "EmitToUser", "user_a", eventOfType(models.EventNewMessage))
	rt.AssertNotCalled(t, "EmitToUser", "user_a", eventOfType(models.EventMessagesSeen))
}

func TestSendMessage_ImageSummaryPlaceholder(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	room := activeRoom()
	room.LastMessage = "earlier"
	storageMock.On("GetRoomByID", "room_1").Return(room, nil)
	rt.On("UserInRoom", mock.Anything, "room_1").Return(false)

	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	storageMock.On("UpdateRoomSummary", "room_1", chat.ImageSummaryLabel).Return(nil)
	rt.On("EmitToRoom", mock.Anything, mock.Anything).Return()
	rt.On("EmitToUser", mock.Anything, mock.Anything).Return()

	msg, err := svc.SendMessage("user_a", "room_1", "", "https://cdn.example.com/img.jpg")

	assert.NoError(t, err)
	assert.Equal(t, models.MessageTypeImage, msg.MessageType)
	assert.Empty(t, msg.Text)

	storageMock.AssertCalled(t, "UpdateRoomSummary", "room_1", chat.ImageSummaryLabel)
	storageMock.AssertNotCalled(t, "AccumulateChatLength", mock.Anything, mock.Anything)
	storageMock.AssertNotCalled(t, "IncrementChatInitiation", mock.Anything)
}

func TestSendMessage_FirstMessageCountsInitiation(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)
	rt.On("UserInRoom", mock.Anything, "room_1").Return(false)
	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	storageMock.On("UpdateRoomSummary", "room_1", "hey").Return(nil)
	// Counter failures are swallowed, not surfaced.
	storageMock.On("IncrementChatInitiation", "user_a").Return(errors.New("redis down"))
	storageMock.On("AccumulateChatLength", "user_a", 3).Return(errors.New("redis down"))
	rt.On("EmitToRoom", mock.Anything, mock.Anything).Return()
	rt.On("EmitToUser", mock.Anything, mock.Anything).Return()

	_, err := svc.SendMessage("user_a", "room_1", "hey", "")

	assert.NoError(t, err, "behavioural counter failures must not fail the send")
	storageMock.AssertCalled(t, "IncrementChatInitiation", "user_a")
}

func TestSendMessage_ChatLengthCountsRunes(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)
	rt.On("UserInRoom", mock.Anything, "room_1").Return(false)
	storageMock.On("AppendMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	storageMock.On("UpdateRoomSummary", "room_1", "привет").Return(nil)
	storageMock.On("IncrementChatInitiation", "user_a").Return(nil)
	// 6 characters, 12 bytes: the accumulator counts characters.
	storageMock.On("AccumulateChatLength", "user_a", 6).Return(nil)
	rt.On("EmitToRoom", mock.Anything, mock.Anything).Return()
	rt.On("EmitToUser", mock.Anything, mock.Anything).Return()

	_, err := svc.SendMessage("user_a", "room_1", "привет", "")

	assert.NoError(t, err)
	storageMock.AssertCalled(t, "AccumulateChatLength", "user_a", 6)
}

func TestSendMessage_Validation(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)

	_, err := svc.SendMessage("user_a", "room_1", "   ", "")
	assert.ErrorIs(t, err, models.ErrValidation, "whitespace-only text is an empty body")

	_, err = svc.SendMessage("user_a", "room_1", "caption", "https://cdn.example.com/img.jpg")
	assert.ErrorIs(t, err, models.ErrValidation, "a message carries text or an image, never both")

	storageMock.AssertNotCalled(t, "AppendMessage", mock.Anything)
}

func TestSendMessage_Forbidden(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_1").Return(activeRoom(), nil)

	_, err := svc.SendMessage("user_c", "room_1", "hi", "")
	assert.ErrorIs(t, err, models.ErrForbidden)

	blocked := activeRoom()
	blocked.IsBlocked = true
	storageMock2 := new(MockStorage)
	storageMock2.On("GetRoomByID", "room_1").Return(blocked, nil)
	svc2 := chat.NewService(storageMock2, rt)

	_, err = svc2.SendMessage("user_a", "room_1", "hi", "")
	assert.ErrorIs(t, err, models.ErrForbidden, "blocked rooms reject sends")

	inactive := activeRoom()
	inactive.IsActive = false
	storageMock3 := new(MockStorage)
	storageMock3.On("GetRoomByID", "room_1").Return(inactive, nil)
	svc3 := chat.NewService(storageMock3, rt)

	_, err = svc3.SendMessage("user_a", "room_1", "hi", "")
	assert.ErrorIs(t, err, models.ErrForbidden, "deactivated rooms reject sends")
}

func TestSendMessage_RoomNotFound(t *testing.T) {
	storageMock := new(MockStorage)
	rt := new(MockRealtime)
	svc := chat.NewService(storageMock, rt)

	storageMock.On("GetRoomByID", "room_x").Return(nil, models.ErrNotFound)

	_, err := svc.SendMessage("user_a", "room_x", "hi", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
