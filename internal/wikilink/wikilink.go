// Package wikilink extracts [[Title]] references from note content.
package wikilink

import "regexp"

var refRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Extract returns the referenced titles in order of appearance, verbatim
// (not slugified, not trimmed), duplicates preserved. Nested brackets are
// not supported; the reference ends at the first ']'. Extraction never
// touches the store.
func Extract(content string) []string {
	matches := refRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Dedupe returns the titles with exact-string duplicates removed, first
// occurrence order preserved. Link resolution deduplicates by title before
// any edge is created.
func Dedupe(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	var out []string
	for _, t := range titles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
