package model

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.English)
)

// NormalizeName returns the cache and URL key for a Pokémon or type name.
// PokeAPI resource names are lower-case, so "Pikachu " and "pikachu" must
// resolve to the same resource.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
// "mr-mime" becomes "Mr-mime", matching how names were always shown.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return upperCaser.String(string(first)) + lowerCaser.String(s[size:])
}

// TitleName returns s in title case. Markdown type listings use it for
// their heading.
func TitleName(s string) string {
	return titleCaser.String(s)
}
