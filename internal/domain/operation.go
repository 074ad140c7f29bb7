package domain

import "time"

// Operation labels derived for an issue within a report month.
const (
	OpCreated         = "Created"
	OpUpdated         = "Updated"
	OpUpdatedNewIssue = "Updated a New Issue"
	OpClosed          = "Closed"
	OpReopened        = "Reopened"
	OpCompleted       = "Completed"
	OpIgnored         = "Ignored"
)

// ClassifyOperation derives the lifecycle label for an issue from its three
// timestamps and state reason. The function is total: every input
// combination yields exactly one label.
func ClassifyOperation(createdAt, updatedAt time.Time, closedAt *time.Time, stateReason string) string {
	if closedAt != nil {
		base := OpClosed
		switch stateReason {
		case "reopened":
			base = OpReopened
		case "completed":
			base = OpCompleted
		case "not_planned":
			base = OpIgnored
		}
		if sameMonth(createdAt, *closedAt) {
			return "Created and " + base
		}
		return base
	}
	if sameMonth(createdAt, updatedAt) {
		if createdAt.Equal(updatedAt) {
			return OpCreated
		}
		if updatedAt.Sub(createdAt) >= 24*time.Hour {
			return OpUpdatedNewIssue
		}
		return OpCreated
	}
	return OpUpdated
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
