package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sawada-k/github-activity/internal/config"
	"github.com/sawada-k/github-activity/internal/domain"
)

// ReportRunner is the subset of Generator the backfill driver depends on.
type ReportRunner interface {
	Generate(ctx context.Context, req domain.ReportRequest) (domain.ReportSummary, error)
}

// RunnerFactory builds a per-owner report runner from resolved settings.
// The backfill driver needs a fresh one per owner because each owner has
// its own credential.
type RunnerFactory func(activity domain.ActivityType, owner string, oc config.Owner) (ReportRunner, error)

// YearMonth identifies one backfill target directory.
type YearMonth struct {
	Year  int
	Month int
}

// Backfiller re-runs report generation for every year/month directory that
// already exists under the output root, for every configured owner.
type Backfiller struct {
	cfg     *config.Config
	logger  *logrus.Logger
	root    string
	factory RunnerFactory
}

// NewBackfiller creates a new Backfiller. An empty root means OutputRoot.
func NewBackfiller(cfg *config.Config, logger *logrus.Logger, root string, factory RunnerFactory) *Backfiller {
	if root == "" {
		root = OutputRoot
	}
	return &Backfiller{
		cfg:     cfg,
		logger:  logger,
		root:    root,
		factory: factory,
	}
}

// ScanMonths finds the <yyyy>/<m|mm> directories under the output root.
// Year directories must be four digits, month directories one or two with a
// value in 1..12; anything else is ignored.
func (b *Backfiller) ScanMonths() ([]YearMonth, error) {
	years, err := os.ReadDir(b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read output root %s: %w", b.root, err)
	}
	var out []YearMonth
	for _, y := range years {
		if !y.IsDir() || len(y.Name()) != 4 {
			continue
		}
		year, err := strconv.Atoi(y.Name())
		if err != nil || year < 1 {
			continue
		}
		months, err := os.ReadDir(filepath.Join(b.root, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read year directory %s: %w", y.Name(), err)
		}
		for _, m := range months {
			if !m.IsDir() || len(m.Name()) > 2 {
				continue
			}
			month, err := strconv.Atoi(m.Name())
			if err != nil || month < 1 || month > 12 {
				continue
			}
			out = append(out, YearMonth{Year: year, Month: month})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// Run regenerates reports for every scanned month, for every configured
// owner and requested activity type, calling Generate directly. A failure
// for one owner/month is logged and does not halt the scan.
func (b *Backfiller) Run(ctx context.Context, activities []domain.ActivityType, format string, replace bool) error {
	months, err := b.ScanMonths()
	if err != nil {
		return err
	}
	for _, ym := range months {
		for _, activity := range activities {
			for _, owner := range b.cfg.Owners(activity) {
				log := b.logger.WithFields(logrus.Fields{
					"owner":    owner,
					"year":     ym.Year,
					"month":    ym.Month,
					"activity": string(activity),
				})
				oc, err := b.cfg.OwnerFor(activity, owner)
				if err != nil {
					log.Errorf("skipping owner: %v", err)
					continue
				}
				runner, err := b.factory(activity, owner, oc)
				if err != nil {
					log.Errorf("failed to build report runner: %v", err)
					continue
				}
				req, err := domain.NewReportRequest(activity, owner, ym.Year, ym.Month, "", replace, format)
				if err != nil {
					log.Errorf("invalid report request: %v", err)
					continue
				}
				sum, err := runner.Generate(ctx, req)
				if err != nil {
					log.Errorf("report generation failed: %v", err)
					continue
				}
				log.Infof("backfill done: %d written, %d skipped, %d failed", sum.Written, sum.Skipped, sum.Failed)
			}
		}
	}
	return nil
}
