package core

// DefaultEventBuffer is the per-client outbound event buffer used when the
// configured size is missing or nonsense.
const DefaultEventBuffer = 32

// Client is one connected peer as seen by the core layer. The transport owns
// the socket; the core only knows the identity and the event channel feeding
// the transport's write loop.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}
