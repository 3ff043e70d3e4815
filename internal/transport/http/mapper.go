package http

import (
	"encoding/json"
	"fmt"

	"github.com/peerwire/signal-relay/internal/core"
	"github.com/peerwire/signal-relay/internal/proto"
)

// recordToCommand validates an inbound record and maps it to a router
// command. A non-nil ErrorMessage means the record violates the protocol;
// it is replied to the sender and the record is otherwise ignored.
func recordToCommand(rec proto.Record) (*core.Command, *proto.ErrorMessage) {
	switch t := rec.Type(); {
	case t == proto.TypeJoinRoom:
		roomID := rec.StringField(proto.FieldRoomID)
		if roomID == "" {
			return nil, protocolError("roomId is required")
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: roomID,
		}, nil

	case proto.IsRelayType(t):
		target := rec.StringField(proto.FieldTargetPeerID)
		if target == "" {
			return nil, protocolError(fmt.Sprintf("targetPeerId is required for %s", t))
		}
		return &core.Command{
			Kind:      core.CommandRelay,
			Target:    target,
			RelayType: t,
			Payload:   relayPayload(rec),
		}, nil

	default:
		return nil, protocolError(fmt.Sprintf("unrecognized message type %q", t))
	}
}

// relayPayload strips the routing fields and keeps everything else raw.
func relayPayload(rec proto.Record) map[string]json.RawMessage {
	payload := make(map[string]json.RawMessage, len(rec))
	for k, v := range rec {
		if k == proto.FieldType || k == proto.FieldTargetPeerID {
			continue
		}
		payload[k] = v
	}
	return payload
}

// outboundFromEvent maps a router event to its wire representation.
func outboundFromEvent(ev *core.Event) any {
	switch ev.Kind {
	case core.EventExistingPeers:
		peers := ev.Peers
		if peers == nil {
			peers = []string{}
		}
		return proto.ExistingPeers{
			Type:   proto.TypeExistingPeers,
			RoomID: ev.Room,
			Peers:  peers,
		}
	case core.EventJoinedRoom:
		return proto.JoinedRoom{
			Type:   proto.TypeJoinedRoom,
			RoomID: ev.Room,
			PeerID: ev.Peer,
		}
	case core.EventNewPeerJoined:
		return proto.NewPeerJoined{
			Type:      proto.TypeNewPeerJoined,
			RoomID:    ev.Room,
			NewPeerID: ev.Peer,
		}
	case core.EventPeerLeft:
		return proto.PeerLeft{
			Type:          proto.TypePeerLeft,
			RoomID:        ev.Room,
			LeavingPeerID: ev.Peer,
			Message:       fmt.Sprintf("peer %s left the room", ev.Peer),
		}
	case core.EventRelay:
		return proto.RelayRecord(ev.RelayType, ev.Peer, ev.Payload)
	case core.EventError:
		return proto.ErrorMessage{
			Type:    proto.TypeError,
			Message: ev.Error.Message,
		}
	default:
		return proto.ErrorMessage{
			Type:    proto.TypeError,
			Message: "internal: unmapped event",
		}
	}
}

func protocolError(msg string) *proto.ErrorMessage {
	return &proto.ErrorMessage{Type: proto.TypeError, Message: msg}
}
