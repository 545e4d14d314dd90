package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"review_sentiment/internal/adapters/debugfiles"
)

var (
	cleanupDir      *string
	cleanupOrganize *string
	cleanupDryRun   *bool
)

func init() {
	cleanupDir = cleanupCmd.Flags().String("dir", "", "Directory holding debug files (default DEBUG_DIR).")
	cleanupOrganize = cleanupCmd.Flags().String("organize", "", "Move debug files into this directory instead of deleting them.")
	cleanupDryRun = cleanupCmd.Flags().Bool("dry-run", false, "List what would be removed without touching anything.")
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [--dir <path>] [--organize <path>] [--dry-run]",
	Short: "Removes or organizes screenshots and HTML dumps left by scrape runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := *cleanupDir
		if dir == "" {
			dir = cfg.DebugDir
		}

		var (
			rep debugfiles.Report
			err error
		)
		if *cleanupOrganize != "" {
			rep, err = debugfiles.Organize(dir, *cleanupOrganize)
		} else {
			rep, err = debugfiles.Clean(dir, *cleanupDryRun)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case rep.DryRun:
			fmt.Fprintf(out, "would remove %d file(s) from %s\n", len(rep.Removed), dir)
		case *cleanupOrganize != "":
			fmt.Fprintf(out, "moved %d file(s) into %s\n", len(rep.Moved), *cleanupOrganize)
		default:
			fmt.Fprintf(out, "removed %d file(s) from %s\n", len(rep.Removed), dir)
		}
		for _, f := range rep.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s\n", f)
		}
		return nil
	},
}
