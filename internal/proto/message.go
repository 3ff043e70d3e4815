// Package proto defines the wire format of the signaling protocol: flat JSON
// records with a mandatory "type" discriminator. Relay payloads (SDP, ICE
// candidates) are never interpreted by the server and stay raw all the way
// through.
package proto

import "encoding/json"

const (
	// Client to server.
	TypeJoinRoom     = "join-room"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"

	// Server to client. The three relay types above also travel this
	// direction, with senderPeerId added.
	TypeYourPeerID    = "your-peer-id"
	TypeExistingPeers = "existing-peers"
	TypeJoinedRoom    = "joined-room"
	TypeNewPeerJoined = "new-peer-joined"
	TypePeerLeft      = "peer-left"
	TypeError         = "error"
)

// Fields interpreted by the server; everything else is opaque payload.
const (
	FieldType         = "type"
	FieldRoomID       = "roomId"
	FieldTargetPeerID = "targetPeerId"
	FieldSenderPeerID = "senderPeerId"
)

// IsRelayType reports whether t is one of the opaque negotiation message
// types the server forwards between peers.
func IsRelayType(t string) bool {
	return t == TypeOffer || t == TypeAnswer || t == TypeICECandidate
}

// Record is an inbound signaling record kept as raw fields.
type Record map[string]json.RawMessage

// ParseRecord decodes a JSON object into a Record. Anything that is not a
// JSON object fails.
func ParseRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// StringField returns the named field if it holds a JSON string, otherwise "".
func (r Record) StringField(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Type returns the record's type discriminator.
func (r Record) Type() string {
	return r.StringField(FieldType)
}

// RelayRecord builds the outbound form of a relay message: the original
// payload fields plus type and senderPeerId. The targetPeerId field is not
// echoed back; the receiver learns the counterparty from senderPeerId.
func RelayRecord(relayType, senderPeerID string, payload map[string]json.RawMessage) Record {
	out := make(Record, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}
	out[FieldType] = quoted(relayType)
	out[FieldSenderPeerID] = quoted(senderPeerID)
	return out
}

func quoted(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// YourPeerID tells a freshly connected client its generated identity. It is
// the first message on every connection.
type YourPeerID struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
}

// ExistingPeers lists the members a room had before the recipient joined.
type ExistingPeers struct {
	Type   string   `json:"type"`
	RoomID string   `json:"roomId"`
	Peers  []string `json:"peers"`
}

// JoinedRoom confirms a join back to the joining peer.
type JoinedRoom struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	PeerID string `json:"peerId"`
}

// NewPeerJoined notifies existing room members about a new member.
type NewPeerJoined struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	NewPeerID string `json:"newPeerId"`
}

// PeerLeft notifies remaining room members that a member is gone.
type PeerLeft struct {
	Type          string `json:"type"`
	RoomID        string `json:"roomId"`
	LeavingPeerID string `json:"leavingPeerId"`
	Message       string `json:"message"`
}

// ErrorMessage is the single error reply shape for malformed input, protocol
// violations and routing failures.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
