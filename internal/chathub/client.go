package chathub

import "buildtobond/backend/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport, so the hub can manage connection types uniformly
// and tests can substitute doubles.
type Client interface {
	// GetUserID returns the identity the connection authenticated as.
	GetUserID() string
	// GetConnID returns the unique identifier of this connection. The
	// presence directory uses it to tell a stale disconnect from a
	// superseded connection apart from the current registration.
	GetConnID() string

	// TrySend queues an outbound event without blocking. It reports false
	// when the event was dropped: either the buffer is full or the client
	// is already closed. Safe to call concurrently with Close.
	TrySend(ev models.Event) bool

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel. Safe to call more
	// than once.
	Close()
}
