// Package slug derives URL-safe identifiers from note titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts a title to its slug: lower-cased, every run of characters
// outside [a-z0-9] collapsed to a single '-', leading and trailing '-'
// stripped. Deterministic and idempotent. An empty or all-punctuation title
// yields an empty slug; collision suffixing is the store's concern.
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
