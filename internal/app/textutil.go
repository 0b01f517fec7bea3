package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// snippet shortens text to at most n runes for the card face.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// categoryTitle renders a category header with its active count badge.
func categoryTitle(category string, active int) string {
	if active == 0 {
		return category
	}
	return fmt.Sprintf("%s (%d)", category, active)
}

func viewToggleLabel(listShown bool) string {
	if listShown {
		return "Map view"
	}
	return "List view"
}

func joinParts(parts []string) string {
	return strings.Join(parts, "  ·  ")
}
