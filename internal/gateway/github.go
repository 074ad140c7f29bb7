// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/sawada-k/github-activity/internal/domain"
)

const perPage = 100

// Fetcher defines the behavior of a gateway for fetching activity from GitHub.
type Fetcher interface {
	// AuthenticatedLogin returns the login of the token's user, used to key
	// output filenames.
	AuthenticatedLogin(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context, owner string) ([]string, error)
	FetchCommits(ctx context.Context, owner, repo string, win domain.MonthWindow) ([]domain.CommitRecord, error)
	FetchIssues(ctx context.Context, owner, repo string, win domain.MonthWindow) ([]domain.IssueRecord, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *logrus.Logger
}

// NewGitHubGateway builds a gateway around a client authenticated with the
// given token. The client is an explicit per-run value: iterating several
// owners means constructing one gateway per resolved credential.
func NewGitHubGateway(token string, logger *logrus.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// AuthenticatedLogin resolves the login of the authenticated user.
func (g *GitHubGateway) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// ListRepositories returns the names of the repositories owned by the given
// owner, paginated at 100 per page.
func (g *GitHubGateway) ListRepositories(ctx context.Context, owner string) ([]string, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var names []string
	for {
		repos, resp, err := g.client.Repositories.ListByUser(ctx, owner, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", owner, err)
		}
		for _, r := range repos {
			names = append(names, r.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// FetchCommits returns all commits in the month window, sorted ascending by
// timestamp. Each commit stub requires a follow-up detail fetch for its
// stats and changed-file list; a failed detail fetch drops that commit only.
func (g *GitHubGateway) FetchCommits(ctx context.Context, owner, repo string, win domain.MonthWindow) ([]domain.CommitRecord, error) {
	log := g.logger.WithFields(logrus.Fields{"owner": owner, "repo": repo})
	opts := &github.CommitsListOptions{
		Since:       win.Start,
		Until:       win.End,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var records []domain.CommitRecord
	for page := 1; ; page++ {
		opts.Page = page
		commits, _, err := g.client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
		}
		for _, c := range commits {
			// The upstream since/until filter works on committer date, but
			// records carry the author date, which diverges on rebases and
			// cherry-picks. Re-check before the detail fetch.
			if !win.Contains(c.GetCommit().GetAuthor().GetDate().Time) {
				continue
			}
			rec, err := g.fetchCommitDetail(ctx, owner, repo, c)
			if err != nil {
				log.WithField("sha", c.GetSHA()).Errorf("dropping commit, detail fetch failed: %v", err)
				continue
			}
			records = append(records, rec)
		}
		if len(commits) < perPage {
			break
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (g *GitHubGateway) fetchCommitDetail(ctx context.Context, owner, repo string, stub *github.RepositoryCommit) (domain.CommitRecord, error) {
	detail, _, err := g.client.Repositories.GetCommit(ctx, owner, repo, stub.GetSHA(), nil)
	if err != nil {
		return domain.CommitRecord{}, err
	}
	files := make([]string, 0, len(detail.Files))
	for _, f := range detail.Files {
		files = append(files, f.GetFilename())
	}
	author := stub.GetCommit().GetAuthor().GetName()
	if login := stub.GetAuthor().GetLogin(); login != "" {
		author = login
	}
	when := stub.GetCommit().GetAuthor().GetDate().Time
	return domain.CommitRecord{
		URL:       stub.GetHTMLURL(),
		Timestamp: when,
		Date:      when.Format(domain.DateLayout),
		Repo:      repo,
		Message:   stub.GetCommit().GetMessage(),
		Author:    author,
		Additions: detail.GetStats().GetAdditions(),
		Deletions: detail.GetStats().GetDeletions(),
		Files:     files,
	}, nil
}

// FetchIssues returns all issues whose updated_at falls in the month window,
// sorted ascending by updated_at. The upstream since filter is not trusted
// to be exact, so results are re-checked client-side. Pull requests show up
// in the issues endpoint too and are filtered out.
func (g *GitHubGateway) FetchIssues(ctx context.Context, owner, repo string, win domain.MonthWindow) ([]domain.IssueRecord, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       win.Start,
		Sort:        "updated",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var records []domain.IssueRecord
	for page := 1; ; page++ {
		opts.Page = page
		issues, _, err := g.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s/%s: %w", owner, repo, err)
		}
		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			if !win.Contains(is.GetUpdatedAt().Time) {
				continue
			}
			records = append(records, newIssueRecord(repo, is))
		}
		if len(issues) < perPage {
			break
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})
	return records, nil
}

func newIssueRecord(repo string, is *github.Issue) domain.IssueRecord {
	labels := make([]string, 0, len(is.Labels))
	for _, l := range is.Labels {
		labels = append(labels, l.GetName())
	}
	var closedAt *time.Time
	if is.ClosedAt != nil {
		t := is.GetClosedAt().Time
		closedAt = &t
	}
	rec := domain.IssueRecord{
		UpdatedAt:   is.GetUpdatedAt().Time,
		CreatedAt:   is.GetCreatedAt().Time,
		ClosedAt:    closedAt,
		Assignee:    is.GetAssignee().GetLogin(),
		Repo:        repo,
		Title:       is.GetTitle(),
		Number:      is.GetNumber(),
		State:       is.GetState(),
		Author:      is.GetUser().GetLogin(),
		Body:        is.GetBody(),
		Labels:      labels,
		Milestone:   is.GetMilestone().GetTitle(),
		StateReason: is.GetStateReason(),
	}
	rec.Operation = domain.ClassifyOperation(rec.CreatedAt, rec.UpdatedAt, rec.ClosedAt, rec.StateReason)
	return rec
}
