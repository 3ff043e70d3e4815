package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/peerwire/signal-relay/internal/config"
	"github.com/peerwire/signal-relay/internal/core"
	"github.com/peerwire/signal-relay/internal/metrics"
)

// NewServer builds the HTTP server: the signaling socket plus health and
// metrics endpoints. No other wire surface exists.
func NewServer(hub *core.Hub, registry *core.Registry, m *metrics.Metrics, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	mux := stdhttp.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", metrics.PrometheusHandler(m))
	mux.Handle("/ws", NewWSHandler(hub, registry, m, cfg, logger))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	_, _ = fmt.Fprint(w, "ok")
}
