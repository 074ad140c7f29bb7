package domain

import "time"

// MonthWindow bounds activity queries to one calendar month: [Start, End).
// The same window is used for both commit and issue queries.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// NewMonthWindow returns the window for the given calendar month, in UTC.
func NewMonthWindow(year, month int) MonthWindow {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return MonthWindow{Start: start, End: start.AddDate(0, 1, 0)}
}

// Contains reports whether t falls inside the window.
func (w MonthWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Label renders the window as e.g. "March 2024".
func (w MonthWindow) Label() string {
	return w.Start.Format("January 2006")
}
