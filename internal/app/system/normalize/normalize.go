// Package normalize holds the canonical forms used for stored and compared
// user input.
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of spaces.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text trims surrounding whitespace from free text (descriptions, messages).
func Text(s string) string {
	return strings.TrimSpace(s)
}
