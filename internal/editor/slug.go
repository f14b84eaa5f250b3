package editor

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeSlug lowercases s and replaces each whitespace run with a hyphen.
// Other characters are kept as typed. Normalizing twice is a no-op.
func NormalizeSlug(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}
