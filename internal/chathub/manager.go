package chathub

import (
	"log"

	"buildtobond/backend/internal/models"
	"buildtobond/backend/internal/storage"

	"github.com/google/uuid"
)

// InboundFrame pairs a client action with the connection it arrived on.
type InboundFrame struct {
	Client Client
	Frame  models.ClientFrame
}

// ManagerService is the hub for live connections. Its Run loop owns the
// connection lifecycle (register, unregister, client frames); the fan-out
// helpers are safe from any goroutine because presence and membership guard
// their own state and client sends go through TrySend, which never blocks
// and cannot race a concurrent Close.
type ManagerService struct {
	Presence *PresenceDirectory
	Rooms    *RoomMembership

	RegisterCh   chan Client
	UnregisterCh chan Client
	FrameCh      chan InboundFrame

	// Bus bridges events between instances over Redis Pub/Sub. Optional;
	// a single-process deployment (and the tests) run without it.
	Bus storage.EventBus
	// InstanceID tags published envelopes so the hub can skip its own.
	InstanceID string
}

// NewManagerService creates a hub with empty presence and membership state.
func NewManagerService(bus storage.EventBus) *ManagerService {
	return &ManagerService{
		Presence:     NewPresenceDirectory(),
		Rooms:        NewRoomMembership(),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		FrameCh:      make(chan InboundFrame),
		Bus:          bus,
		InstanceID:   uuid.New().String(),
	}
}

// Run is the hub's main loop. Start it once, in its own goroutine.
func (m *ManagerService) Run() {
	m.startBridgeListener()

	for {
		select {
		case c := <-m.RegisterCh:
			m.handleRegister(c)
		case c := <-m.UnregisterCh:
			m.handleUnregister(c)
		case f := <-m.FrameCh:
			m.handleFrame(f)
		}
	}
}

func (m *ManagerService) handleRegister(c Client) {
	superseded := m.Presence.Register(c)
	if superseded != nil && superseded.GetConnID() != c.GetConnID() {
		// Fast reconnect: drop the old connection's room state and shut
		// it down. Its late unregister will fail the identity guard.
		m.Rooms.DropConnection(superseded.GetConnID())
		superseded.Close()
		log.Printf("Superseded connection %s for user %s", superseded.GetConnID(), c.GetUserID())
	}
	m.BroadcastOnline()
}

func (m *ManagerService) handleUnregister(c Client) {
	removed := m.Presence.Unregister(c.GetUserID(), c.GetConnID())
	m.Rooms.DropConnection(c.GetConnID())
	c.Close()
	if removed {
		m.BroadcastOnline()
	}
}

func (m *ManagerService) handleFrame(f InboundFrame) {
	connID := f.Client.GetConnID()
	roomID := f.Frame.RoomID
	if roomID == "" {
		return
	}

	switch f.Frame.Action {
	case models.FrameJoin:
		m.Rooms.Join(connID, roomID)
	case models.FrameLeave:
		m.Rooms.Leave(connID, roomID)
	case models.FrameTyping:
		m.relayTyping(f, models.EventUserTyping)
	case models.FrameStopTyping:
		m.relayTyping(f, models.EventUserStoppedTyping)
	default:
		log.Printf("Unknown frame action %q from connection %s", f.Frame.Action, connID)
	}
}

func (m *ManagerService) relayTyping(f InboundFrame, eventType string) {
	ev := models.Event{
		Type:   eventType,
		RoomID: f.Frame.RoomID,
		UserID: f.Client.GetUserID(),
	}
	m.deliverToRoom(f.Frame.RoomID, ev, f.Client.GetConnID())
	m.publish(models.EventEnvelope{RoomID: f.Frame.RoomID, Event: ev})
}

// UserInRoom reports whether the user is online and that connection has the
// room open. This distinguishes "online generally" from "actively looking at
// this conversation".
func (m *ManagerService) UserInRoom(userID, roomID string) bool {
	c, ok := m.Presence.Lookup(userID)
	return ok && m.Rooms.IsMember(c.GetConnID(), roomID)
}

// IsOnline reports whether the user has a live connection.
func (m *ManagerService) IsOnline(userID string) bool {
	_, ok := m.Presence.Lookup(userID)
	return ok
}

// EmitToRoom pushes an event to every connection viewing the room, and
// bridges it to other instances.
func (m *ManagerService) EmitToRoom(roomID string, ev models.Event) {
	m.deliverToRoom(roomID, ev, "")
	m.publish(models.EventEnvelope{RoomID: roomID, Event: ev})
}

// EmitToUser pushes an event to the user's presence connection, and bridges
// it to other instances. A missing destination is not an error.
func (m *ManagerService) EmitToUser(userID string, ev models.Event) {
	m.deliverToUser(userID, ev)
	m.publish(models.EventEnvelope{UserID: userID, Event: ev})
}

// BroadcastOnline pushes the current online-users snapshot to everyone
// connected to this instance.
func (m *ManagerService) BroadcastOnline() {
	ev := models.Event{
		Type:    models.EventOnlineUsers,
		UserIDs: m.Presence.Snapshot(),
	}
	for _, c := range m.Presence.All() {
		m.send(c, ev)
	}
}

func (m *ManagerService) deliverToRoom(roomID string, ev models.Event, exceptConnID string) {
	for _, connID := range m.Rooms.Connections(roomID) {
		if connID == exceptConnID {
			continue
		}
		if c, ok := m.Presence.LookupConn(connID); ok {
			m.send(c, ev)
		}
	}
}

func (m *ManagerService) deliverToUser(userID string, ev models.Event) {
	if c, ok := m.Presence.Lookup(userID); ok {
		m.send(c, ev)
	}
}

// send is non-blocking: a slow or closed client drops the event. Delivery
// is at-most-once and never surfaces to the request path.
func (m *ManagerService) send(c Client, ev models.Event) {
	if !c.TrySend(ev) {
		log.Printf("Dropping %s event for connection %s", ev.Type, c.GetConnID())
	}
}

func (m *ManagerService) publish(env models.EventEnvelope) {
	if m.Bus == nil {
		return
	}
	env.Origin = m.InstanceID
	if err := m.Bus.PublishEvent(env); err != nil {
		log.Printf("Error publishing event to bridge: %v", err)
	}
}
