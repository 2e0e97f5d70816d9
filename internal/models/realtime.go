package models

// Event types pushed to client connections.
const (
	EventOnlineUsers       = "online_users"
	EventNewMessage        = "new_message"
	EventMessagesSeen      = "messages_seen"
	EventUserTyping        = "user_typing"
	EventUserStoppedTyping = "user_stopped_typing"
)

// Event is one realtime payload pushed to a client connection. Delivery is
// best-effort and at-most-once; nothing in the request path waits on it.
type Event struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	// UserID identifies the actor for typing events.
	UserID string `json:"userId,omitempty"`
	// UserIDs carries the full online snapshot for online_users.
	UserIDs []string `json:"userIds,omitempty"`
	// Message carries the persisted message for new_message.
	Message *Message `json:"message,omitempty"`
	// SeenBy and MessageIDs describe a messages_seen receipt. One event
	// collapses every message the viewer transitioned.
	SeenBy     string   `json:"seenBy,omitempty"`
	MessageIDs []string `json:"messageIds,omitempty"`
}

// Actions a client may send over its connection. None of them persist
// anything; join/leave drive room membership, typing events are relayed.
const (
	FrameJoin       = "join"
	FrameLeave      = "leave"
	FrameTyping     = "typing"
	FrameStopTyping = "stop_typing"
)

// ClientFrame is a frame read from a client connection.
type ClientFrame struct {
	Action string `json:"action"`
	RoomID string `json:"roomId"`
}

// EventEnvelope wraps an Event for the cross-instance bridge. Origin is the
// emitting hub's instance ID so a hub can skip its own publications; RoomID
// or UserID selects the fan-out target on the receiving side.
type EventEnvelope struct {
	Origin string `json:"origin"`
	RoomID string `json:"roomId,omitempty"`
	UserID string `json:"userId,omitempty"`
	Event  Event  `json:"event"`
}
