package util

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts arbitrary text into a lowercase filesystem-safe slug:
// non-alphanumeric runs become single hyphens, edges are trimmed.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = nonAlnumRe.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}
