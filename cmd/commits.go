package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sawada-k/github-activity/internal/domain"
)

var commitsCmd = &cobra.Command{
	Use:   "commits <owner> <year> <month>",
	Short: "Generates a monthly commit report for each of an owner's repositories",
	Long: `Fetches every commit in the given calendar month for each repository
belonging to the owner and writes one report file per repository, in
Markdown (nl) or CSV format.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args, domain.ActivityCommits)
	},
}

func init() {
	rootCmd.AddCommand(commitsCmd)
	addReportFlags(commitsCmd)
}
