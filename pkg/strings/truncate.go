// Package strings holds text helpers shared by the CLI output code.
package strings

import (
	"strings"
)

// DefaultCommandMaxLen is the widest a command is shown in table output.
const DefaultCommandMaxLen = 60

// MinTruncateLen is the smallest maxLen Truncate honors; anything shorter
// would leave no room for a character plus "...".
const MinTruncateLen = 4

// Truncate collapses s onto one line and shortens it to maxLen runes,
// ending in "..." when something was cut. Runs of whitespace, including
// newlines from multi-line commands, become single spaces.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
