package utils

import (
	"strings"
)

// NormalizeString trims whitespace and normalizes string input
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// DefaultIfBlank returns the trimmed value, or fallback when nothing is left.
func DefaultIfBlank(s, fallback string) string {
	if v := NormalizeString(s); v != "" {
		return v
	}
	return fallback
}

// NewlinesToBreaks converts line endings to HTML line breaks. CRLF counts
// as a single break.
func NewlinesToBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// AnyBlank reports whether any of the values is empty after trimming.
func AnyBlank(values ...string) bool {
	for _, v := range values {
		if NormalizeString(v) == "" {
			return true
		}
	}
	return false
}
