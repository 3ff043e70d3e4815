package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peerwire/signal-relay/internal/metrics"
)

// MaxRoomIDBytes bounds client-supplied room identifiers. The id is an
// opaque map key, so the only constraint is that it stays a sane size.
const MaxRoomIDBytes = 128

// Hub routes signaling messages between peers grouped into rooms. A single
// goroutine (Run) owns the room table and the peer-to-room association, so
// all joins, leaves and disconnects touching a room are serialized.
type Hub struct {
	registry *Registry
	metrics  *metrics.Metrics
	log      *zerolog.Logger

	// Owned exclusively by the Run goroutine.
	rooms    map[string]*Room
	memberOf map[string]string

	register   chan *Client
	unregister chan *Client
	commands   chan dispatch
}

type dispatch struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub routing through the given registry.
func NewHub(registry *Registry, m *metrics.Metrics, logger *zerolog.Logger) *Hub {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry:   registry,
		metrics:    m,
		log:        logger,
		rooms:      make(map[string]*Room),
		memberOf:   make(map[string]string),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan dispatch),
	}
}

// Register announces a freshly connected client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a disconnected or errored client: room cleanup first,
// then the identity is discarded. Close and transport error funnel into the
// same path; the departed peer itself is never notified.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Dispatch hands the hub one parsed inbound message from a client.
func (h *Hub) Dispatch(c *Client, cmd *Command) {
	h.commands <- dispatch{client: c, cmd: cmd}
}

// Run processes register/unregister/command events until ctx is cancelled.
// It is the single synchronization domain for all room state.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.metrics.Inc(metrics.ConnectionsOpened)
			h.log.Debug().Str("peer_id", c.ID).Msg("peer connected")

		case c := <-h.unregister:
			h.leaveRoom(c.ID)
			h.registry.Remove(c.ID)
			h.metrics.Inc(metrics.ConnectionsClosed)
			h.log.Debug().Str("peer_id", c.ID).Msg("peer disconnected")

		case d := <-h.commands:
			switch d.cmd.Kind {
			case CommandJoinRoom:
				h.handleJoin(d.client, d.cmd.Room)
			case CommandRelay:
				h.handleRelay(d.client, d.cmd)
			}
		}
	}
}

func (h *Hub) handleJoin(c *Client, roomID string) {
	if roomID == "" {
		h.replyError(c.ID, relayError(ErrCodeBadRequest, "roomId is required"))
		return
	}
	if len(roomID) > MaxRoomIDBytes {
		h.replyError(c.ID, relayError(ErrCodeBadRequest, fmt.Sprintf("roomId exceeds %d bytes", MaxRoomIDBytes)))
		return
	}

	// Switching rooms is the only way to leave one short of disconnecting;
	// the old room gets the same cleanup either way.
	h.leaveRoom(c.ID)

	room, ok := h.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		h.rooms[roomID] = room
		h.metrics.Inc(metrics.RoomsCreated)
		h.log.Debug().Str("room_id", roomID).Msg("room created")
	}

	// Snapshot strictly before insertion so the joiner never sees itself.
	existing := room.Members()

	h.send(c.ID, &Event{Kind: EventExistingPeers, Room: roomID, Peers: existing})
	h.send(c.ID, &Event{Kind: EventJoinedRoom, Room: roomID, Peer: c.ID})

	room.Add(c.ID)
	h.memberOf[c.ID] = roomID

	// Only after insertion, so no member can hear from the new peer before
	// it knows the peer exists.
	for _, member := range existing {
		if h.registry.IsOpen(member) {
			h.send(member, &Event{Kind: EventNewPeerJoined, Room: roomID, Peer: c.ID})
		}
	}

	h.metrics.Inc(metrics.RoomJoins)
	h.log.Debug().Str("room_id", roomID).Str("peer_id", c.ID).Int("members", len(existing)+1).Msg("peer joined room")
}

func (h *Hub) handleRelay(c *Client, cmd *Command) {
	roomID, ok := h.memberOf[c.ID]
	if !ok {
		h.metrics.Inc(metrics.RelaysRejected)
		h.replyError(c.ID, relayError(ErrCodeNotInRoom, fmt.Sprintf("join a room before sending %s", cmd.RelayType)))
		return
	}

	room := h.rooms[roomID]
	if room == nil || !room.Has(cmd.Target) || !h.registry.IsOpen(cmd.Target) {
		h.metrics.Inc(metrics.RelaysRejected)
		h.replyError(c.ID, relayError(ErrCodePeerUnavailable, fmt.Sprintf("peer %s is not reachable in room %s", cmd.Target, roomID)))
		return
	}

	h.send(cmd.Target, &Event{
		Kind:      EventRelay,
		Room:      roomID,
		Peer:      c.ID,
		RelayType: cmd.RelayType,
		Payload:   cmd.Payload,
	})
	h.metrics.Inc(metrics.RelaysForwarded)
	h.log.Debug().Str("room_id", roomID).Str("from", c.ID).Str("to", cmd.Target).Str("relay_type", cmd.RelayType).Msg("relayed")
}

// leaveRoom removes the peer from its current room, deletes the room if it
// emptied, and otherwise notifies every remaining open member. No-op for a
// peer that is not in a room.
func (h *Hub) leaveRoom(peerID string) {
	roomID, ok := h.memberOf[peerID]
	if !ok {
		return
	}
	delete(h.memberOf, peerID)

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	room.Remove(peerID)

	if room.Empty() {
		delete(h.rooms, roomID)
		h.metrics.Inc(metrics.RoomsDeleted)
		h.log.Debug().Str("room_id", roomID).Msg("room deleted")
		return
	}

	for _, member := range room.Members() {
		if h.registry.IsOpen(member) {
			h.send(member, &Event{Kind: EventPeerLeft, Room: roomID, Peer: peerID})
		}
	}
}

func (h *Hub) replyError(peerID string, rerr *RelayError) {
	h.metrics.Inc(metrics.ErrorReplies)
	h.log.Warn().Str("peer_id", peerID).Str("code", rerr.Code).Msg(rerr.Message)
	h.send(peerID, &Event{Kind: EventError, Error: rerr})
}

func (h *Hub) send(peerID string, ev *Event) {
	if !h.registry.Send(peerID, ev) {
		h.metrics.Inc(metrics.EventsDropped)
	}
}
