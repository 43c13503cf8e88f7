// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// ContainsAnyFold reports whether the lower-cased form of s contains any of
// the needles. Needles are expected to already be lower case.
// Matching is plain substring containment, no stemming or tokenization.
func ContainsAnyFold(s string, needles ...string) bool {
	lowered := strings.ToLower(s)
	for _, n := range needles {
		if n != "" && strings.Contains(lowered, n) {
			return true
		}
	}
	return false
}

// FirstNonEmpty returns the first non-blank string from the arguments,
// or empty string when all are blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// TruncateRunes limits s to at most n runes. Multi-byte text is cut on a
// rune boundary, never mid-character.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
