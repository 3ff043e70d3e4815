package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peerwire/signal-relay/internal/app"
	"github.com/peerwire/signal-relay/internal/config"
	"github.com/peerwire/signal-relay/internal/log"
)

var (
	flagConfig    string
	flagAddr      string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "signal-relay",
	Short: "Signaling relay for WebRTC peers: room membership and opaque offer/answer/ICE forwarding",
	RunE:  runServer,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.Flags().StringVar(&flagLogFormat, "log-format", "", "log format: console or json (overrides config)")
	rootCmd.SilenceUsage = true
}

func runServer(cmd *cobra.Command, _ []string) error {
	bootLog := log.New(flagLogLevel, flagLogFormat)

	cfg, configPath, err := config.Load(bootLog, flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	logger := log.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Str("config", configPath).Str("addr", cfg.Addr).Msg("starting signal relay")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
