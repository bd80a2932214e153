package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/relay"
	"github.com/nguyentantai21042004/notime/internal/server"
)

func relayCMD(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run only the chat webhook relay, forwarding links to a remote summarizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadRelay(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logger.New(cfg.Logging.Level)
			log.Info(ctx, "Relaying to %s", cfg.Relay.APIEndpoint)

			r := relay.New(cfg.Relay.ChannelSecret,
				relay.NewAPIClient(cfg.Relay.APIEndpoint, cfg.Relay.Timeout),
				relay.NewLINEClient(cfg.Relay.ReplyEndpoint, cfg.Relay.ChannelAccessToken, cfg.Relay.Timeout),
				log)

			err = server.Run(ctx, server.New(server.Handler{
				Relay:    r,
				Gatherer: newRegistry(),
				Logger:   log,
			}), cfg.Server.Address, log)
			r.Wait()
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}
