// Package logutil keeps log fields bounded.
package logutil

// TruncateForLog cuts s to at most maxLen runes and marks the cut with "...".
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
