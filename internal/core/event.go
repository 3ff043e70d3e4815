package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventExistingPeers lists a room's members as of just before the
	// recipient was inserted. Never contains the recipient.
	EventExistingPeers EventKind = iota
	// EventJoinedRoom confirms a join back to the joining peer.
	EventJoinedRoom
	// EventNewPeerJoined tells existing members about a new member.
	EventNewPeerJoined
	// EventPeerLeft tells remaining members that a member left or
	// disconnected.
	EventPeerLeft
	// EventRelay carries an opaque negotiation payload between two peers
	// in the same room.
	EventRelay
	// EventError reports a malformed message, protocol violation or
	// routing failure to the offending sender only.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind EventKind
	Room string

	// Peer is the subject: the joiner for EventNewPeerJoined and
	// EventJoinedRoom, the departed peer for EventPeerLeft, the sender
	// for EventRelay.
	Peer string

	// Peers is the member snapshot for EventExistingPeers.
	Peers []string

	// RelayType and Payload carry an EventRelay passthrough.
	RelayType string
	Payload   map[string]json.RawMessage

	Error *RelayError
}
