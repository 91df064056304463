package textutil

import (
	"unicode"
	"unicode/utf8"
)

// IsTranslatable checks if a string contains at least one letter.
// Pure punctuation, numbers and whitespace are not worth extracting.
func IsTranslatable(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
