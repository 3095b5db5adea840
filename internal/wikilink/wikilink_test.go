package wikilink

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "plain markdown with no references", nil},
		{"single", "See [[Composting]] for details.", []string{"Composting"}},
		{"multiple", "[[A]] then [[B]] then [[C]]", []string{"A", "B", "C"}},
		{"duplicates preserved", "[[A]] and again [[A]]", []string{"A", "A"}},
		{"verbatim not slugified", "[[Hello World!]]", []string{"Hello World!"}},
		{"whitespace kept", "[[ padded ]]", []string{" padded "}},
		{"empty brackets skipped", "[[]] nothing", nil},
		{"unbalanced trailing", "[[A]]]]", []string{"A"}},
		{"multiline", "line one [[A]]\nline two [[B]]", []string{"A", "B"}},
		{"single brackets ignored", "[not a link] [also not]", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Extract(c.content)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Extract(%q) = %v, want %v", c.content, got, c.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"A", "B", "A", "C", "B"})
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe = %v, want %v", got, want)
	}
	if Dedupe(nil) != nil {
		t.Error("Dedupe(nil) should be nil")
	}
}
