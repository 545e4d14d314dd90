package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"review_sentiment/internal/adapters/observability"
	"review_sentiment/internal/shared"
)

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: "reviewctl scrapes software reviews, scores their sentiment and tidies debug output.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = shared.Load()
		if *demo {
			cfg.DemoMode = true
		}
		// stdout carries command output
		log.Logger = observability.NewLogger(os.Stderr, cfg.AppEnv, cfg.LogLevel)
		return cfg.Validate()
	},
	SilenceUsage: true,
}

var (
	cfg  shared.Config
	demo *bool
)

func init() {
	demo = rootCmd.PersistentFlags().Bool("demo", false, "Serve built-in reviews instead of scraping.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
