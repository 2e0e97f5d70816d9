package chathub

import (
	"sort"
	"sync"
)

// PresenceDirectory tracks which users currently have a live connection.
// One connection per user, last-write-wins: a newer connection silently
// supersedes an older one. State is in-process only; reconnecting clients
// re-register after a restart.
type PresenceDirectory struct {
	mu      sync.RWMutex
	clients map[string]Client // userID -> connection
	byConn  map[string]Client // connID -> connection
}

// NewPresenceDirectory creates an empty directory.
func NewPresenceDirectory() *PresenceDirectory {
	return &PresenceDirectory{
		clients: make(map[string]Client),
		byConn:  make(map[string]Client),
	}
}

// Register stores the client as the user's live connection, overwriting any
// prior mapping. Returns the superseded client, if any, so the hub can shut
// it down.
func (p *PresenceDirectory) Register(c Client) Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.clients[c.GetUserID()]
	if prev != nil {
		delete(p.byConn, prev.GetConnID())
	}
	p.clients[c.GetUserID()] = c
	p.byConn[c.GetConnID()] = c
	return prev
}

// Unregister removes the user's mapping only if connID still matches the
// connection on file. The guard keeps a late disconnect from a superseded
// connection from evicting the newer registration. Reports whether the
// mapping was removed.
func (p *PresenceDirectory) Unregister(userID, connID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.clients[userID]
	if !ok || current.GetConnID() != connID {
		return false
	}
	delete(p.clients, userID)
	delete(p.byConn, connID)
	return true
}

// Lookup returns the user's live connection, if any.
func (p *PresenceDirectory) Lookup(userID string) (Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.clients[userID]
	return c, ok
}

// LookupConn returns the connection with the given ID, if registered.
func (p *PresenceDirectory) LookupConn(connID string) (Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.byConn[connID]
	return c, ok
}

// Snapshot returns the sorted set of currently registered user IDs.
func (p *PresenceDirectory) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.clients))
	for id := range p.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every registered connection.
func (p *PresenceDirectory) All() []Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clients := make([]Client, 0, len(p.clients))
	for _, c := range p.clients {
		clients = append(clients, c)
	}
	return clients
}
