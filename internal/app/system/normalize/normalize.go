// internal/app/system/normalize/normalize.go

// Package normalize holds small input-normalization helpers used by the
// stores before persisting user-entered identity fields.
package normalize

import "strings"

// Email lowercases and trims an email address (or phone used as a login id).
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Username trims surrounding whitespace but preserves case; uniqueness uses
// the folded *_ci field, not this value.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// AuthMethod lowercases and trims an auth method label.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone strips spaces and common separators from a phone number.
func Phone(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case ' ', '-', '(', ')', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
