package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sawada-k/github-activity/internal/config"
	"github.com/sawada-k/github-activity/internal/domain"
	"github.com/sawada-k/github-activity/internal/gateway"
	"github.com/sawada-k/github-activity/internal/usecase"
)

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("omit", "", "Repository name to skip")
	cmd.Flags().String("format", domain.FormatMarkdown, "Report format: csv or nl")
	cmd.Flags().Bool("replace", false, "Overwrite existing report files")
}

// runReport is the shared body of the commits and issues commands. All
// argument and month-range validation happens here, before any network call.
func runReport(cmd *cobra.Command, args []string, activity domain.ActivityType) error {
	owner := args[0]
	year, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[1])
	}
	month, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid month %q", args[2])
	}
	omit, _ := cmd.Flags().GetString("omit")
	format, _ := cmd.Flags().GetString("format")
	replace, _ := cmd.Flags().GetBool("replace")

	req, err := domain.NewReportRequest(activity, owner, year, month, omit, replace, format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	cfgPath, _ := cmd.InheritedFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	oc, err := cfg.OwnerFor(activity, owner)
	if err != nil {
		return err
	}
	token, err := oc.ResolveToken()
	if err != nil {
		return fmt.Errorf("failed to resolve token for %s: %w", owner, err)
	}
	fetcher, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		return err
	}

	gen := usecase.NewGenerator(fetcher, oc, logger, "")
	sum, err := gen.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d repositories, %d written, %d skipped, %d failed\n",
		activity, sum.Repositories, sum.Written, sum.Skipped, sum.Failed)
	return nil
}
