package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact limit untouched", strings.Repeat("a", 10), 10, strings.Repeat("a", 10)},
		{"over limit gets ellipsis", strings.Repeat("a", 11), 10, strings.Repeat("a", 7) + "..."},
		{
			// A multi-byte rune straddling the cut must not be split: the cut
			// backs up to the rune's start instead of slicing mid-sequence.
			name:     "multibyte rune at the boundary",
			input:    strings.Repeat("a", 8) + strings.Repeat("日", 4),
			limit:    12,
			expected: strings.Repeat("a", 8) + "...",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.input, tc.limit)
			assert.Equal(t, tc.expected, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), tc.limit)
		})
	}
}

func TestTruncate_MultibyteAtCSVLimit(t *testing.T) {
	// 1020 ASCII bytes followed by 3-byte runes puts a continuation byte at
	// index 1021, exactly where the naive cut for the 1024 limit would land.
	input := strings.Repeat("a", 1020) + strings.Repeat("日", 10)
	got := truncate(input, CSVTextLimit)

	assert.Equal(t, strings.Repeat("a", 1020)+"...", got)
	assert.True(t, utf8.ValidString(got))
}
