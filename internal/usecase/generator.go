// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sawada-k/github-activity/internal/config"
	"github.com/sawada-k/github-activity/internal/domain"
	"github.com/sawada-k/github-activity/internal/gateway"
	"github.com/sawada-k/github-activity/internal/report"
)

// OutputRoot is the directory tree reports are written under.
const OutputRoot = "activity/development"

// Generator is the use case for producing monthly activity reports. It walks
// the owner's repositories one at a time, applying skip rules before any
// fetch, and writes one report file per repository.
type Generator struct {
	fetcher gateway.Fetcher
	owner   config.Owner
	logger  *logrus.Logger
	root    string
}

// NewGenerator creates a new Generator. An empty root means OutputRoot;
// tests pass a temp directory.
func NewGenerator(fetcher gateway.Fetcher, owner config.Owner, logger *logrus.Logger, root string) *Generator {
	if root == "" {
		root = OutputRoot
	}
	return &Generator{
		fetcher: fetcher,
		owner:   owner,
		logger:  logger,
		root:    root,
	}
}

// OutputPath returns the deterministic report location for one repository.
func (g *Generator) OutputPath(login, repo string, req domain.ReportRequest) string {
	name := fmt.Sprintf("%s-%s-github-%s.md", login, repo, req.Type)
	return filepath.Join(g.root, strconv.Itoa(req.Year), strconv.Itoa(req.Month), name)
}

// Generate produces one report per repository and returns the run counters.
// Per-repository failures are logged and counted, never fatal; only the
// initial login/listing calls abort the run.
func (g *Generator) Generate(ctx context.Context, req domain.ReportRequest) (domain.ReportSummary, error) {
	var sum domain.ReportSummary

	login, err := g.fetcher.AuthenticatedLogin(ctx)
	if err != nil {
		return sum, fmt.Errorf("failed to resolve authenticated user: %w", err)
	}
	repos, err := g.fetcher.ListRepositories(ctx, req.Owner)
	if err != nil {
		return sum, fmt.Errorf("failed to list repositories for %s: %w", req.Owner, err)
	}
	sum.Repositories = len(repos)
	win := req.Window()

	for _, repo := range repos {
		log := g.logger.WithFields(logrus.Fields{"owner": req.Owner, "repo": repo})
		switch {
		case repo == req.OmitRepo:
			log.Debug("repository omitted by request")
			sum.Skipped++
			continue
		case !g.owner.Includes(repo):
			log.Debug("repository not in configured allowlist")
			sum.Skipped++
			continue
		case g.owner.Excluded(repo, req.Year, req.Month):
			log.Debug("repository excluded by configuration")
			sum.Skipped++
			continue
		}
		path := g.OutputPath(login, repo, req)
		if _, err := os.Stat(path); err == nil && !req.Replace {
			log.Debug("report already exists, skipping")
			sum.Skipped++
			continue
		}
		wrote, err := g.generateOne(ctx, req, repo, win, path)
		if err != nil {
			log.Errorf("failed to generate report: %v", err)
			sum.Failed++
			continue
		}
		if wrote {
			log.WithField("path", path).Info("report written")
			sum.Written++
		} else {
			log.Debug("no activity in window, nothing written")
			sum.Skipped++
		}
	}
	return sum, nil
}

// generateOne fetches and renders a single repository's report. The file is
// written only after the full content is assembled, and always as a whole.
func (g *Generator) generateOne(ctx context.Context, req domain.ReportRequest, repo string, win domain.MonthWindow, path string) (bool, error) {
	content, ok, err := g.render(ctx, req, repo, win)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write report: %w", err)
	}
	return true, nil
}

func (g *Generator) render(ctx context.Context, req domain.ReportRequest, repo string, win domain.MonthWindow) (string, bool, error) {
	switch req.Type {
	case domain.ActivityCommits:
		records, err := g.fetcher.FetchCommits(ctx, req.Owner, repo, win)
		if err != nil {
			return "", false, err
		}
		if req.Format == domain.FormatCSV {
			content, ok := report.CommitsCSV(records)
			return content, ok, nil
		}
		content, ok := report.CommitsMarkdown(req.Owner, repo, win, records)
		return content, ok, nil
	case domain.ActivityIssues:
		records, err := g.fetcher.FetchIssues(ctx, req.Owner, repo, win)
		if err != nil {
			return "", false, err
		}
		if req.Format == domain.FormatCSV {
			content, ok := report.IssuesCSV(records)
			return content, ok, nil
		}
		content, ok := report.IssuesMarkdown(req.Owner, repo, win, records)
		return content, ok, nil
	}
	return "", false, fmt.Errorf("unknown activity type %q", req.Type)
}
