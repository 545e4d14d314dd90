package commands

import (
	"github.com/spf13/cobra"

	"review_sentiment/internal/app"
	"review_sentiment/internal/bootstrap"
)

var (
	runMax     *int
	runNoStore *bool
)

func init() {
	runMax = runCmd.Flags().Int("max-reviews", 0, "Reviews per company (0 uses MAX_REVIEWS).")
	runNoStore = runCmd.Flags().Bool("no-store", false, "Skip the database; results are only printed.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [company...] [--max-reviews N] [--no-store]",
	Short: "Runs one scrape over the named companies (default: the first catalog companies) and prints the summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := bootstrap.Build(cmd.Context(), cfg, bootstrap.Options{NoStore: *runNoStore, NoCache: *runNoStore})
		if err != nil {
			return err
		}
		defer deps.Close()

		companies := args
		if len(companies) == 0 {
			all := deps.Catalog.Companies()
			if n := deps.Scrape.MaxCompanies(); len(all) > n {
				all = all[:n]
			}
			companies = all
		}
		req := app.RunRequest{Companies: companies, MaxReviews: *runMax}
		if err := app.ValidateRequest(req, deps.Scrape.MaxCompanies()); err != nil {
			return err
		}

		sum := deps.Scrape.Run(cmd.Context(), req)
		return printJSON(cmd.OutOrStdout(), sum)
	},
}
