package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
	"github.com/nguyentantai21042004/notime/internal/relay"
	"github.com/nguyentantai21042004/notime/internal/server"
	"github.com/nguyentantai21042004/notime/internal/watcher"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the summarizer HTTP API (and the webhook relay when configured)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logger.New(cfg.Logging.Level)
			log.Info(ctx, "Configuration loaded (cache: %s, llm: %s/%s, transcriber: %s)",
				cfg.Cache.Driver, cfg.LLM.Provider, cfg.LLM.Model, cfg.Transcriber.Backend)

			a, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			h := server.Handler{
				Dispatcher: a.dispatcher,
				Gatherer:   a.registry,
				Logger:     log,
			}

			var r relay.Relay
			if cfg.RelayEnabled() {
				summarize := relay.SummarizerFunc(func(ctx context.Context, rawURL string) (models.Result, error) {
					return a.dispatcher.Handle(ctx, rawURL), nil
				})
				r = relay.New(cfg.Relay.ChannelSecret, summarize,
					relay.NewLINEClient(cfg.Relay.ReplyEndpoint, cfg.Relay.ChannelAccessToken, cfg.Relay.Timeout), log)
				h.Relay = r
				log.Info(ctx, "Webhook relay enabled on /callback")
			}

			if *cfgPath != "" {
				w, err := watcher.New(*cfgPath, reloadWhitelist(a, log), log, 0)
				if err != nil {
					log.Warn(ctx, "Config watcher disabled: %v", err)
				} else {
					defer w.Stop()
					go func() {
						if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
							log.Error(ctx, "Config watcher: %v", err)
						}
					}()
				}
			}

			err = server.Run(ctx, server.New(h), cfg.Server.Address, log)
			if r != nil {
				log.Info(ctx, "Waiting for webhook events to finish...")
				r.Wait()
			}
			return err
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return serve
}

// reloadWhitelist re-reads the config file and swaps the video host table.
// Other settings need a restart.
func reloadWhitelist(a *app, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		cfg, err := config.Load(filePath)
		if err != nil {
			return err
		}
		a.classifier.Reload(cfg.Video.Whitelist)
		log.Info(ctx, "Video whitelist reloaded (%d providers)", len(cfg.Video.Whitelist))
		return nil
	}
}
