// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the display format used for timestamps embedded in reports.
const DateLayout = "2006-01-02 15:04:05"

// CommitRecord holds one commit's activity for a monthly report.
// Timestamp is the sort key; Date is its display form. Records are built
// once during fetch and never mutated afterwards.
type CommitRecord struct {
	URL       string
	Timestamp time.Time
	Date      string
	Repo      string
	Message   string
	Author    string
	Additions int
	Deletions int
	Files     []string
}

// IssueRecord holds one issue's activity for a monthly report. Operation is
// derived by ClassifyOperation, not stored upstream.
type IssueRecord struct {
	UpdatedAt   time.Time
	CreatedAt   time.Time
	ClosedAt    *time.Time
	Operation   string
	Assignee    string
	Repo        string
	Title       string
	Number      int
	State       string
	Author      string
	Body        string
	Labels      []string
	Milestone   string
	StateReason string
}

// Report formats accepted by the report commands.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "nl"
)

// ActivityType selects which kind of activity a report covers.
type ActivityType string

const (
	ActivityCommits ActivityType = "commits"
	ActivityIssues  ActivityType = "issues"
)

// ReportRequest describes one report run. It is validated once by
// NewReportRequest, before any network call, and treated as immutable.
type ReportRequest struct {
	Type     ActivityType
	Owner    string
	Year     int
	Month    int
	OmitRepo string
	Replace  bool
	Format   string
}

// NewReportRequest validates the request parameters up front.
func NewReportRequest(activity ActivityType, owner string, year, month int, omitRepo string, replace bool, format string) (ReportRequest, error) {
	if activity != ActivityCommits && activity != ActivityIssues {
		return ReportRequest{}, fmt.Errorf("unknown activity type %q", activity)
	}
	if owner == "" {
		return ReportRequest{}, fmt.Errorf("owner must not be empty")
	}
	if year < 1 {
		return ReportRequest{}, fmt.Errorf("invalid year %d", year)
	}
	if month < 1 || month > 12 {
		return ReportRequest{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if format != FormatCSV && format != FormatMarkdown {
		return ReportRequest{}, fmt.Errorf("unsupported format %q: must be %q or %q", format, FormatCSV, FormatMarkdown)
	}
	return ReportRequest{
		Type:     activity,
		Owner:    owner,
		Year:     year,
		Month:    month,
		OmitRepo: omitRepo,
		Replace:  replace,
		Format:   format,
	}, nil
}

// Window returns the calendar-month window the request covers.
func (r ReportRequest) Window() MonthWindow {
	return NewMonthWindow(r.Year, r.Month)
}

// ReportSummary holds the per-run counters returned by the generator.
type ReportSummary struct {
	Repositories int
	Written      int
	Skipped      int
	Failed       int
}
