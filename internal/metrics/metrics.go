package metrics

import "sync"

// Counter names incremented by the registry, router and transport.
const (
	ConnectionsOpened = "connections_opened"
	ConnectionsClosed = "connections_closed"
	RoomsCreated      = "rooms_created"
	RoomsDeleted      = "rooms_deleted"
	RoomJoins         = "room_joins"
	RelaysForwarded   = "relays_forwarded"
	RelaysRejected    = "relays_rejected"
	ErrorReplies      = "error_replies"
	EventsDropped     = "events_dropped"
)

// Metrics is a minimal, concurrency-safe counter registry, exposed in
// Prometheus text format by PrometheusHandler.
type Metrics struct {
	mu sync.Mutex
	m  map[string]uint64
}

func New() *Metrics {
	return &Metrics{
		m: make(map[string]uint64),
	}
}

func (m *Metrics) Inc(name string) {
	m.mu.Lock()
	m.m[name]++
	m.mu.Unlock()
}

func (m *Metrics) Get(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[name]
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]uint64, len(m.m))
	for k, v := range m.m {
		out[k] = v
	}
	return out
}
