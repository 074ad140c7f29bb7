package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawada-k/github-activity/internal/config"
	"github.com/sawada-k/github-activity/internal/domain"
)

// stubRunner records the requests it receives.
type stubRunner struct {
	requests []domain.ReportRequest
	err      error
}

func (s *stubRunner) Generate(ctx context.Context, req domain.ReportRequest) (domain.ReportSummary, error) {
	s.requests = append(s.requests, req)
	return domain.ReportSummary{}, s.err
}

func makeMonthDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
}

func backfillConfig() *config.Config {
	return &config.Config{GitHub: config.GitHub{
		Commits: map[string]config.Owner{"acme": {Token: "t"}},
		Issues:  map[string]config.Owner{"acme": {Token: "t"}},
	}}
}

func TestBackfiller_ScanMonths(t *testing.T) {
	root := t.TempDir()
	// Zero-padded and bare month directories are both accepted; junk is not.
	makeMonthDirs(t, root, "2024/3", "2023/11", "2023/02", "notes/1", "2024/13", "2024/x", "20244/1")

	b := NewBackfiller(backfillConfig(), testLogger(), root, nil)
	months, err := b.ScanMonths()
	require.NoError(t, err)

	assert.Equal(t, []YearMonth{
		{Year: 2023, Month: 2},
		{Year: 2023, Month: 11},
		{Year: 2024, Month: 3},
	}, months)
}

func TestBackfiller_Run(t *testing.T) {
	root := t.TempDir()
	makeMonthDirs(t, root, "2024/3", "2024/4")

	runner := &stubRunner{}
	factory := func(activity domain.ActivityType, owner string, oc config.Owner) (ReportRunner, error) {
		return runner, nil
	}

	b := NewBackfiller(backfillConfig(), testLogger(), root, factory)
	activities := []domain.ActivityType{domain.ActivityCommits, domain.ActivityIssues}
	err := b.Run(context.Background(), activities, domain.FormatMarkdown, false)
	require.NoError(t, err)

	// 2 months x 2 activity types x 1 owner.
	require.Len(t, runner.requests, 4)
	assert.Equal(t, domain.ActivityCommits, runner.requests[0].Type)
	assert.Equal(t, domain.ActivityIssues, runner.requests[1].Type)
	assert.Equal(t, 3, runner.requests[0].Month)
	assert.Equal(t, 4, runner.requests[2].Month)
	for _, req := range runner.requests {
		assert.Equal(t, "acme", req.Owner)
		assert.Equal(t, 2024, req.Year)
	}
}

// One owner/month failure must not halt the scan.
func TestBackfiller_Run_FailureContinues(t *testing.T) {
	root := t.TempDir()
	makeMonthDirs(t, root, "2024/3", "2024/4")

	runner := &stubRunner{err: errors.New("github api error")}
	factory := func(activity domain.ActivityType, owner string, oc config.Owner) (ReportRunner, error) {
		return runner, nil
	}

	b := NewBackfiller(backfillConfig(), testLogger(), root, factory)
	err := b.Run(context.Background(), []domain.ActivityType{domain.ActivityCommits}, domain.FormatMarkdown, false)
	require.NoError(t, err)
	assert.Len(t, runner.requests, 2)
}

func TestBackfiller_Run_FactoryFailureContinues(t *testing.T) {
	root := t.TempDir()
	makeMonthDirs(t, root, "2024/3")

	factory := func(activity domain.ActivityType, owner string, oc config.Owner) (ReportRunner, error) {
		return nil, errors.New("no token")
	}

	b := NewBackfiller(backfillConfig(), testLogger(), root, factory)
	err := b.Run(context.Background(), []domain.ActivityType{domain.ActivityCommits}, domain.FormatMarkdown, false)
	assert.NoError(t, err)
}

func TestBackfiller_ScanMonths_MissingRoot(t *testing.T) {
	b := NewBackfiller(backfillConfig(), testLogger(), filepath.Join(t.TempDir(), "nope"), nil)
	_, err := b.ScanMonths()
	assert.Error(t, err)
}
