// Package sanitize cleans free text place names before they reach the location lookup.
package sanitize

import "strings"

var stripped = strings.NewReplacer(
	`"`, "",
	`'`, "",
	"{", "",
	"}", "",
	"<", "",
	">", "",
)

// Place removes quotes, braces and angle brackets anywhere in text and trims surrounding whitespace.
func Place(text string) string {
	return strings.TrimSpace(stripped.Replace(text))
}

// Empty reports whether a sanitized name means no place was given.
func Empty(name string) bool {
	return name == ""
}
