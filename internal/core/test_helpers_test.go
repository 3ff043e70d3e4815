package core

import (
	"context"
	"testing"
	"time"

	"github.com/peerwire/signal-relay/internal/metrics"
)

func newTestHub(t *testing.T) (*Hub, *Registry, *metrics.Metrics) {
	t.Helper()

	reg := NewRegistry(16)
	m := metrics.New()
	hub := NewHub(reg, m, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub, reg, m
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not reached: %s", what)
}
