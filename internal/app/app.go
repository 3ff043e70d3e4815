package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerwire/signal-relay/internal/config"
	"github.com/peerwire/signal-relay/internal/core"
	"github.com/peerwire/signal-relay/internal/metrics"
	transporthttp "github.com/peerwire/signal-relay/internal/transport/http"
)

// App wires together the signaling core and the transport layer.
type App struct {
	server          *stdhttp.Server
	hub             *core.Hub
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration. All state
// lives in memory; nothing survives a restart.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	m := metrics.New()
	registry := core.NewRegistry(cfg.EventBuffer)
	hub := core.NewHub(registry, m, logger)
	server := transporthttp.NewServer(hub, registry, m, cfg, logger)

	return &App{
		server:          server,
		hub:             hub,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
