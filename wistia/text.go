package wistia

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTagPattern = regexp.MustCompile(`(?is)<.*?>`)

// StripHTML removes anything that looks like a markup tag
func StripHTML(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// DecodeEntities decodes the ampersand entity Wistia leaves in names and descriptions
func DecodeEntities(s string) string {
	return strings.ReplaceAll(s, "&amp;", "&")
}

// SanitizeText strips tags first and then decodes entities, so "&amp;lt;b&amp;gt;"
// survives as literal text instead of being re-parsed as a tag.
func SanitizeText(s string) string {
	return DecodeEntities(StripHTML(s))
}

// RemoveNumberPrefix drops leading numbering used to order course lessons,
// e.g. "01. Getting Started" becomes "Getting Started". Strings that are only
// numbering are returned unchanged.
func RemoveNumberPrefix(s string) string {
	trimmed := strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.' || unicode.IsSpace(r)
	})
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return s
	}
	return trimmed
}
