package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases s for case-insensitive substring matching. Accents
// and other marks are kept, so "cafe" does not match "Café".
// A Caser carries state, so a fresh one is built per call.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

// containsLower reports whether needle (already normalized) occurs in hay.
func containsLower(hay, needle string) bool {
	return strings.Contains(Normalize(hay), needle)
}
