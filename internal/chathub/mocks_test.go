package chathub_test

import (
	"sync"

	"buildtobond/backend/internal/models"
)

// MockClient is a test double for the chathub.Client interface. Events the
// hub pushes land in Recv for assertions.
type MockClient struct {
	userID string
	connID string
	Recv   chan models.Event

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID, connID string) *MockClient {
	return &MockClient{
		userID: userID,
		connID: connID,
		Recv:   make(chan models.Event, 10), // Buffered to prevent blocking in tests
	}
}

func (c *MockClient) GetUserID() string { return c.userID }
func (c *MockClient) GetConnID() string { return c.connID }

func (c *MockClient) TrySend(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Recv <- ev:
		return true
	default:
		return false
	}
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Recv)
}

func (c *MockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// drainEvents empties the client's receive buffer and returns what was
// queued so far.
func (c *MockClient) drainEvents() []models.Event {
	var events []models.Event
	for {
		select {
		case ev, ok := <-c.Recv:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

// fakeEventBus is an in-memory storage.EventBus double. Published envelopes
// are recorded for assertions; the test feeds incoming envelopes to drive
// the hub's bridge listener.
type fakeEventBus struct {
	mu        sync.Mutex
	published []models.EventEnvelope
	incoming  chan models.EventEnvelope
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{incoming: make(chan models.EventEnvelope, 10)}
}

func (b *fakeEventBus) PublishEvent(env models.EventEnvelope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, env)
	return nil
}

func (b *fakeEventBus) SubscribeEvents() <-chan models.EventEnvelope {
	return b.incoming
}

func (b *fakeEventBus) publishedEnvelopes() []models.EventEnvelope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.EventEnvelope(nil), b.published...)
}
