package report

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/sawada-k/github-activity/internal/domain"
)

// oneLine flattens a multi-line value so it fits a Markdown list item.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// CommitsMarkdown renders commit records as a natural-language Markdown
// report: a header, a summary block with aggregate line totals, then one
// subsection per commit in fixed field order.
func CommitsMarkdown(owner, repo string, win domain.MonthWindow, records []domain.CommitRecord) (string, bool) {
	if len(records) == 0 {
		return "", false
	}

	var totalAdd, totalDel int
	additions := make([]float64, 0, len(records))
	deletions := make([]float64, 0, len(records))
	for _, r := range records {
		totalAdd += r.Additions
		totalDel += r.Deletions
		additions = append(additions, float64(r.Additions))
		deletions = append(deletions, float64(r.Deletions))
	}
	meanAdd, _ := stats.Mean(additions)
	meanDel, _ := stats.Mean(deletions)

	var b strings.Builder
	fmt.Fprintf(&b, "# GitHub Commits in %s owned by %s for %s\n\n", repo, owner, win.Label())
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total commits in %s: %d\n", win.Label(), len(records))
	fmt.Fprintf(&b, "- Total lines changed: +%d -%d\n", totalAdd, totalDel)
	fmt.Fprintf(&b, "- Average lines per commit: +%.1f -%.1f\n\n", meanAdd, meanDel)

	for _, r := range records {
		fmt.Fprintf(&b, "### Commit on %s\n\n", r.Date)
		fmt.Fprintf(&b, "- URL: %s\n", r.URL)
		fmt.Fprintf(&b, "- Author: %s\n", r.Author)
		fmt.Fprintf(&b, "- Changes: +%d -%d\n", r.Additions, r.Deletions)
		fmt.Fprintf(&b, "- Message: %s\n", oneLine(truncate(r.Message, CSVTextLimit)))
		if len(r.Files) > 0 {
			b.WriteString("- Files:\n")
			for _, f := range truncateFiles(r.Files, MarkdownFileLimit) {
				fmt.Fprintf(&b, "  - %s\n", f)
			}
		}
		b.WriteString("\n")
	}
	return b.String(), true
}

// IssuesMarkdown renders issue records as a natural-language Markdown
// report: a header, a summary block with open/closed counts, then one
// subsection per issue in fixed field order.
func IssuesMarkdown(owner, repo string, win domain.MonthWindow, records []domain.IssueRecord) (string, bool) {
	if len(records) == 0 {
		return "", false
	}

	var open, closed int
	for _, r := range records {
		if r.State == "closed" {
			closed++
		} else {
			open++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# GitHub Issues in %s owned by %s for %s\n\n", repo, owner, win.Label())
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total issues in %s: %d\n", win.Label(), len(records))
	fmt.Fprintf(&b, "- Open issues: %d\n", open)
	fmt.Fprintf(&b, "- Closed issues: %d\n\n", closed)

	for _, r := range records {
		fmt.Fprintf(&b, "### #%d %s\n\n", r.Number, oneLine(r.Title))
		fmt.Fprintf(&b, "- Operation: %s\n", r.Operation)
		state := r.State
		if r.StateReason != "" {
			state = fmt.Sprintf("%s (%s)", r.State, r.StateReason)
		}
		fmt.Fprintf(&b, "- State: %s\n", state)
		fmt.Fprintf(&b, "- Author: %s\n", r.Author)
		if r.Assignee != "" {
			fmt.Fprintf(&b, "- Assignee: %s\n", r.Assignee)
		}
		if len(r.Labels) > 0 {
			fmt.Fprintf(&b, "- Labels: %s\n", strings.Join(r.Labels, ", "))
		}
		if r.Milestone != "" {
			fmt.Fprintf(&b, "- Milestone: %s\n", r.Milestone)
		}
		fmt.Fprintf(&b, "- Created: %s\n", r.CreatedAt.Format(domain.DateLayout))
		fmt.Fprintf(&b, "- Updated: %s\n", r.UpdatedAt.Format(domain.DateLayout))
		if r.ClosedAt != nil {
			fmt.Fprintf(&b, "- Closed: %s\n", r.ClosedAt.Format(domain.DateLayout))
		}
		if r.Body != "" {
			fmt.Fprintf(&b, "- Body: %s\n", oneLine(truncate(r.Body, MarkdownBodyLimit)))
		}
		b.WriteString("\n")
	}
	return b.String(), true
}
