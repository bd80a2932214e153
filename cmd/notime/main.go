package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	var cfgPath string
	root := &cobra.Command{
		Use:           "notime",
		Short:         "Summarize web pages and videos behind a link",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default: built-in defaults plus environment)")

	root.AddCommand(serveCMD(&cfgPath), relayCMD(&cfgPath), summarizeCMD(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
