package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/peerwire/signal-relay/internal/config"
	"github.com/peerwire/signal-relay/internal/core"
	"github.com/peerwire/signal-relay/internal/metrics"
	"github.com/peerwire/signal-relay/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to the signaling hub.
// One connection is one peer for its whole lifetime.
type WSHandler struct {
	hub      *core.Hub
	registry *core.Registry
	metrics  *metrics.Metrics
	log      *zerolog.Logger

	maxMessageBytes int64
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, registry *core.Registry, m *metrics.Metrics, cfg config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		hub:             hub,
		registry:        registry,
		metrics:         m,
		log:             logger,
		maxMessageBytes: cfg.MaxMessageBytes,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := h.registry.Connect()

	// The peer must know its identity before anything else happens on the
	// connection.
	if err := wsjson.Write(ctx, conn, proto.YourPeerID{Type: proto.TypeYourPeerID, PeerID: client.ID}); err != nil {
		h.registry.Remove(client.ID)
		h.log.Warn().Err(err).Str("peer_id", client.ID).Msg("failed to deliver peer id")
		return
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("peer_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop parses inbound frames and dispatches them to the hub. Malformed
// frames and protocol violations get an error reply and the connection stays
// open; only transport failures end the loop.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		rec, err := proto.ParseRecord(data)
		if err != nil {
			h.metrics.Inc(metrics.ErrorReplies)
			h.log.Warn().Err(err).Str("peer_id", client.ID).Msg("malformed inbound record")
			if writeErr := wsjson.Write(ctx, conn, proto.ErrorMessage{
				Type:    proto.TypeError,
				Message: "malformed message",
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		cmd, protoErr := recordToCommand(rec)
		if protoErr != nil {
			h.metrics.Inc(metrics.ErrorReplies)
			h.log.Warn().Str("peer_id", client.ID).Str("reason", protoErr.Message).Msg("rejected inbound record")
			if writeErr := wsjson.Write(ctx, conn, protoErr); writeErr != nil {
				return writeErr
			}
			continue
		}

		h.hub.Dispatch(client, cmd)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case ev, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(ev)); err != nil {
				h.log.Warn().Err(err).Str("peer_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
