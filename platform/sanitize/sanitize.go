// Package sanitize cleans user-provided text before it is persisted.
package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML removes markup from a string. Entities are decoded and the
// result stripped again so encoded tags do not survive.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = entities.Replace(out)
	out = tagPattern.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// Text prepares a free-form field (transition notes, rejection reasons,
// comments) for storage.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr applies Text to an optional field.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	return &out
}
