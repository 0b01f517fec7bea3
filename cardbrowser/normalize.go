package cardbrowser

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var plainPolicy = bluemonday.StrictPolicy()

// NormalizeText performs Unicode normalization and trims whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	// Collapse internal control characters except newlines.
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}

// NormalizeTag prepares tag text for exact comparison: NFKC and trimmed.
func NormalizeTag(text string) string {
	return strings.TrimSpace(norm.NFKC.String(text))
}

// PlainText strips markup from a description so it can be shown as text.
func PlainText(text string) string {
	if text == "" {
		return ""
	}
	return NormalizeText(html.UnescapeString(plainPolicy.Sanitize(text)))
}
