package core

import "encoding/json"

// CommandKind describes what an inbound message asks the router to do.
type CommandKind int

const (
	// CommandJoinRoom moves the peer into a room, leaving its current one.
	CommandJoinRoom CommandKind = iota
	// CommandRelay forwards an opaque negotiation payload to one peer in
	// the sender's room.
	CommandRelay
)

// Command is a parsed inbound message.
type Command struct {
	Kind CommandKind

	// Room is the target room for CommandJoinRoom.
	Room string

	// Target and RelayType describe a CommandRelay; Payload carries the
	// original record's fields minus type and targetPeerId, untouched.
	Target    string
	RelayType string
	Payload   map[string]json.RawMessage
}
