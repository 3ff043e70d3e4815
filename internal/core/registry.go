package core

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live connections and hands out peer identities. It is the
// only component that assigns or revokes a peer id; room bookkeeping lives in
// the Hub. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	buffer  int
	clients map[string]*Client
}

// NewRegistry constructs an empty registry. buffer sizes each client's
// outbound event channel.
func NewRegistry(buffer int) *Registry {
	return &Registry{
		buffer:  buffer,
		clients: make(map[string]*Client),
	}
}

// Connect generates a fresh identity, registers a client for it and returns
// the client. The caller must deliver the identity to the connection before
// processing any inbound message.
func (r *Registry) Connect() *Client {
	c := NewClient(uuid.NewString(), r.buffer)

	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()

	return c
}

// IsOpen reports whether the named peer still has a live connection.
func (r *Registry) IsOpen(peerID string) bool {
	r.mu.RLock()
	_, ok := r.clients[peerID]
	r.mu.RUnlock()
	return ok
}

// Send delivers an event to the named peer's connection. Unknown or closed
// peers are a silent no-op, and a full event buffer drops the event rather
// than block. The return value reports whether the event was enqueued; a
// closed connection is a terminal fact, so there are no retries.
func (r *Registry) Send(peerID string, ev *Event) bool {
	r.mu.RLock()
	c, ok := r.clients[peerID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case c.Events <- ev:
		return true
	default:
		// Slow consumer; the transport layer's problem, not ours.
		return false
	}
}

// Remove discards the identity. Called after room cleanup on disconnect or
// transport error.
func (r *Registry) Remove(peerID string) {
	r.mu.Lock()
	delete(r.clients, peerID)
	r.mu.Unlock()
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
