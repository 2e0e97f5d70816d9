package chathub

import "sync"

// RoomMembership tracks which connections have a room open right now. It
// backs in-room seen detection and typing fan-out. A reverse index per
// connection makes disconnect cleanup a single call.
type RoomMembership struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{} // roomID -> connIDs
	conns map[string]map[string]struct{} // connID -> roomIDs
}

// NewRoomMembership creates an empty membership table.
func NewRoomMembership() *RoomMembership {
	return &RoomMembership{
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the room. Idempotent.
func (r *RoomMembership) Join(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[string]struct{})
	}
	r.rooms[roomID][connID] = struct{}{}

	if r.conns[connID] == nil {
		r.conns[connID] = make(map[string]struct{})
	}
	r.conns[connID][roomID] = struct{}{}
}

// Leave removes the connection from the room. Idempotent.
func (r *RoomMembership) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.remove(connID, roomID)
}

// IsMember reports whether the connection currently has the room open.
func (r *RoomMembership) IsMember(connID, roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID][connID]
	return ok
}

// Connections returns the connections currently viewing the room.
func (r *RoomMembership) Connections(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rooms[roomID]))
	for connID := range r.rooms[roomID] {
		ids = append(ids, connID)
	}
	return ids
}

// DropConnection removes the connection from every room it had joined.
// No stale membership survives a closed connection.
func (r *RoomMembership) DropConnection(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.conns[connID] {
		r.remove(connID, roomID)
	}
}

func (r *RoomMembership) remove(connID, roomID string) {
	if set, ok := r.rooms[roomID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if set, ok := r.conns[connID]; ok {
		delete(set, roomID)
		if len(set) == 0 {
			delete(r.conns, connID)
		}
	}
}
