package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Fold lower-cases s, trims it and collapses inner whitespace to one space,
// so "Division  1 " and "division 1" compare equal.
func Fold(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}
