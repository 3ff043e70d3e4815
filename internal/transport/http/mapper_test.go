package http

import (
	"strings"
	"testing"

	"github.com/peerwire/signal-relay/internal/core"
	"github.com/peerwire/signal-relay/internal/proto"
)

func parse(t *testing.T, raw string) proto.Record {
	t.Helper()
	rec, err := proto.ParseRecord([]byte(raw))
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return rec
}

func TestJoinRoomMapped(t *testing.T) {
	cmd, protoErr := recordToCommand(parse(t, `{"type":"join-room","roomId":"r1"}`))
	if protoErr != nil {
		t.Fatalf("unexpected protocol error: %+v", protoErr)
	}
	if cmd.Kind != core.CommandJoinRoom || cmd.Room != "r1" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestJoinRoomWithoutRoomIDRejected(t *testing.T) {
	cmd, protoErr := recordToCommand(parse(t, `{"type":"join-room"}`))
	if cmd != nil || protoErr == nil {
		t.Fatalf("expected protocol error, got cmd=%+v err=%+v", cmd, protoErr)
	}
	if !strings.Contains(protoErr.Message, "roomId") {
		t.Fatalf("error should name the missing field: %s", protoErr.Message)
	}
}

func TestRelayMapsPayloadWithoutRoutingFields(t *testing.T) {
	cmd, protoErr := recordToCommand(parse(t, `{"type":"offer","targetPeerId":"peer-2","sdp":"v=0","extra":{"a":1}}`))
	if protoErr != nil {
		t.Fatalf("unexpected protocol error: %+v", protoErr)
	}
	if cmd.Kind != core.CommandRelay || cmd.Target != "peer-2" || cmd.RelayType != "offer" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if _, ok := cmd.Payload["type"]; ok {
		t.Fatal("payload should not carry the type field")
	}
	if _, ok := cmd.Payload["targetPeerId"]; ok {
		t.Fatal("payload should not carry targetPeerId")
	}
	if string(cmd.Payload["sdp"]) != `"v=0"` {
		t.Fatalf("sdp field mangled: %s", cmd.Payload["sdp"])
	}
	if string(cmd.Payload["extra"]) != `{"a":1}` {
		t.Fatalf("opaque field mangled: %s", cmd.Payload["extra"])
	}
}

func TestRelayWithoutTargetRejected(t *testing.T) {
	for _, typ := range []string{"offer", "answer", "ice-candidate"} {
		_, protoErr := recordToCommand(parse(t, `{"type":"`+typ+`","sdp":"v=0"}`))
		if protoErr == nil {
			t.Fatalf("%s without targetPeerId accepted", typ)
		}
		if !strings.Contains(protoErr.Message, "targetPeerId") {
			t.Fatalf("error should name the missing field: %s", protoErr.Message)
		}
	}
}

func TestUnknownTypeRejectedByName(t *testing.T) {
	_, protoErr := recordToCommand(parse(t, `{"type":"dance"}`))
	if protoErr == nil {
		t.Fatal("expected protocol error")
	}
	if !strings.Contains(protoErr.Message, "dance") {
		t.Fatalf("error should name the unrecognized type: %s", protoErr.Message)
	}
}

func TestOutboundExistingPeersNeverNil(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventExistingPeers, Room: "r1"})
	ep, ok := out.(proto.ExistingPeers)
	if !ok {
		t.Fatalf("unexpected outbound type %T", out)
	}
	if ep.Peers == nil {
		t.Fatal("peers must marshal as [] rather than null")
	}
}
