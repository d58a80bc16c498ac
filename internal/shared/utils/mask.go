package utils

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "asha@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" {
		return "***"
	}
	first, _ := utf8.DecodeRuneInString(local)
	if first == utf8.RuneError {
		return "***@" + domain
	}
	return string(first) + "***@" + domain
}
