// Package report renders normalized activity records into CSV or Markdown
// report bodies. Both renderers return ok=false for an empty record set, in
// which case no file must be written.
package report

import (
	"fmt"
	"strings"

	"github.com/sawada-k/github-activity/internal/domain"
)

// sanitizeField makes a free-text value safe for the line-oriented CSV
// output: commas become semicolons and newlines become spaces. Fields are
// deliberately not RFC-4180 quoted.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, ",", ";")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// CommitsCSV renders commit records as a fenced CSV block.
func CommitsCSV(records []domain.CommitRecord) (string, bool) {
	if len(records) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString("```csv\n")
	b.WriteString("url,date,repo,message,author,additions,deletions,files\n")
	for _, r := range records {
		files := strings.Join(truncateFiles(r.Files, CSVFileLimit), "; ")
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%d,%d,%s\n",
			sanitizeField(r.URL),
			r.Date,
			sanitizeField(r.Repo),
			sanitizeField(truncate(r.Message, CSVTextLimit)),
			sanitizeField(r.Author),
			r.Additions,
			r.Deletions,
			sanitizeField(files),
		)
	}
	b.WriteString("```\n")
	return b.String(), true
}

// IssuesCSV renders issue records as a fenced CSV block.
func IssuesCSV(records []domain.IssueRecord) (string, bool) {
	if len(records) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString("```csv\n")
	b.WriteString("number,title,state,operation,author,assignee,labels,milestone,created_at,updated_at,closed_at,repo,body\n")
	for _, r := range records {
		closed := ""
		if r.ClosedAt != nil {
			closed = r.ClosedAt.Format(domain.DateLayout)
		}
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			r.Number,
			sanitizeField(r.Title),
			r.State,
			r.Operation,
			sanitizeField(r.Author),
			sanitizeField(r.Assignee),
			sanitizeField(strings.Join(r.Labels, "; ")),
			sanitizeField(r.Milestone),
			r.CreatedAt.Format(domain.DateLayout),
			r.UpdatedAt.Format(domain.DateLayout),
			closed,
			sanitizeField(r.Repo),
			sanitizeField(truncate(r.Body, CSVTextLimit)),
		)
	}
	b.WriteString("```\n")
	return b.String(), true
}
