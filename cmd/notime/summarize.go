package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/export"
	"github.com/nguyentantai21042004/notime/internal/logger"
)

func summarizeCMD(cfgPath *string) *cobra.Command {
	var docxPath string
	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize one URL and print the result JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			// logs go to stderr so stdout stays valid JSON
			log := logger.NewWithWriter(cfg.Logging.Level, os.Stderr)

			a, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.dispatcher.Handle(ctx, args[0])

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("write result: %w", err)
			}

			if !res.OK {
				return fmt.Errorf("summarize %s failed", args[0])
			}
			if docxPath != "" {
				if err := export.WriteReply("Summary", res, docxPath); err != nil {
					return err
				}
				log.Info(ctx, "Saved %s", docxPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&docxPath, "docx", "", "also write the reply to this .docx file")
	return cmd
}
