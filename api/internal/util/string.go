package util

import (
	"regexp"
	"strings"
)

// fenceRe matches a markdown code fence with an optional "json" tag.
var fenceRe = regexp.MustCompile("(?i)```[ \\t]*(?:json)?")

// StripCodeFences removes every markdown fence marker from s, so that
// "```json\n{...}\n```" becomes "{...}".
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Truncate shortens s to at most n runes, appending "…" when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
