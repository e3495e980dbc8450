package panel

import (
	"strconv"
	"strings"
)

const DefaultTimeoutMinutes = 5

// ParseWhitelist splits the field on commas and trims each entry. Entries
// are neither validated nor deduplicated, and an empty field yields [""].
func ParseWhitelist(text string) []string {
	parts := strings.Split(text, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseTimeoutMinutes reads the leading integer of the field. Anything that
// does not start with a positive integer falls back to five minutes, so a
// negative value such as "-3" yields 5 rather than passing through.
func ParseTimeoutMinutes(text string) int {
	s := strings.TrimLeft(text, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return DefaultTimeoutMinutes
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return DefaultTimeoutMinutes
	}
	return n
}

// FormatTimeoutMinutes renders a stored millisecond timeout for the field.
func FormatTimeoutMinutes(ms int64) string {
	if ms <= 0 {
		ms = DefaultTimeoutMinutes * 60 * 1000
	}
	return strconv.FormatFloat(float64(ms)/60000, 'f', -1, 64)
}
