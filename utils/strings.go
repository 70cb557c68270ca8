package utils

import (
	"strings"
	"unicode"
)

// GetPathSafeName lowercases value and keeps only letters, digits, '-' and
// '_', so "Helvetica Neue" becomes "helveticaneue".
func GetPathSafeName(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '-' || r == '_':
			return r
		default:
			return -1
		}
	}, value)
}
