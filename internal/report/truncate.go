package report

import (
	"fmt"
	"unicode/utf8"
)

// Field and list limits applied before a record is embedded in a report.
const (
	CSVTextLimit      = 1024
	MarkdownBodyLimit = 500
	CSVFileLimit      = 50
	MarkdownFileLimit = 10
)

// truncate cuts s to at most limit bytes, ellipsis included. The cut backs
// up to a rune boundary so a multi-byte character is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// truncateFiles caps a file list at limit entries. When the list is longer,
// the last slot becomes a "...and N more files" marker.
func truncateFiles(files []string, limit int) []string {
	if len(files) <= limit {
		return files
	}
	shown := limit - 1
	out := make([]string, 0, limit)
	out = append(out, files[:shown]...)
	out = append(out, fmt.Sprintf("...and %d more files", len(files)-shown))
	return out
}
