package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sawada-k/github-activity/internal/domain"
)

var issuesCmd = &cobra.Command{
	Use:   "issues <owner> <year> <month>",
	Short: "Generates a monthly issue report for each of an owner's repositories",
	Long: `Fetches every issue updated in the given calendar month for each
repository belonging to the owner, classifies its lifecycle operation, and
writes one report file per repository, in Markdown (nl) or CSV format.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args, domain.ActivityIssues)
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
	addReportFlags(issuesCmd)
}
