package commands

import (
	"github.com/spf13/cobra"

	"review_sentiment/internal/bootstrap"
)

func init() {
	rootCmd.AddCommand(productsCmd)
}

var productsCmd = &cobra.Command{
	Use:   "products <company>...",
	Short: "Scores every catalog product of the given companies.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := bootstrap.Build(cmd.Context(), cfg, bootstrap.Options{NoStore: true, NoCache: true})
		if err != nil {
			return err
		}
		defer deps.Close()
		return printJSON(cmd.OutOrStdout(), deps.Products.AnalyzeCompanies(cmd.Context(), args))
	},
}
