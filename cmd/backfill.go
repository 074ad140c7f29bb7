package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sawada-k/github-activity/internal/config"
	"github.com/sawada-k/github-activity/internal/domain"
	"github.com/sawada-k/github-activity/internal/gateway"
	"github.com/sawada-k/github-activity/internal/usecase"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Re-generates reports for every existing year/month directory",
	Long: `Scans the output tree for year/month directories that already exist and
re-runs report generation for every configured owner in each of them.
Failures for one owner/month are logged and do not halt the scan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		cfgPath, _ := cmd.InheritedFlags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		replace, _ := cmd.Flags().GetBool("replace")
		commitsOnly, _ := cmd.Flags().GetBool("commits")
		issuesOnly, _ := cmd.Flags().GetBool("issues")

		activities := []domain.ActivityType{domain.ActivityCommits, domain.ActivityIssues}
		if commitsOnly && !issuesOnly {
			activities = []domain.ActivityType{domain.ActivityCommits}
		}
		if issuesOnly && !commitsOnly {
			activities = []domain.ActivityType{domain.ActivityIssues}
		}

		factory := func(activity domain.ActivityType, owner string, oc config.Owner) (usecase.ReportRunner, error) {
			token, err := oc.ResolveToken()
			if err != nil {
				return nil, err
			}
			fetcher, err := gateway.NewGitHubGateway(token, logger)
			if err != nil {
				return nil, err
			}
			return usecase.NewGenerator(fetcher, oc, logger, ""), nil
		}

		b := usecase.NewBackfiller(cfg, logger, "", factory)
		return b.Run(cmd.Context(), activities, format, replace)
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().String("format", domain.FormatMarkdown, "Report format: csv or nl")
	backfillCmd.Flags().Bool("replace", false, "Overwrite existing report files")
	backfillCmd.Flags().Bool("commits", false, "Backfill commit reports only")
	backfillCmd.Flags().Bool("issues", false, "Backfill issue reports only")
}
