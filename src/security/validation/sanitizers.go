// src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"
)

// SanitizeForFormulaInjection prepends a single quote if the string starts
// with a formula character, so spreadsheet software treats exported cells as
// text. Client names and descriptions come from uploads and go back out in
// the CSV report export.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 0 {
		firstChar := rune(trimmed[0])
		if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' {
			return "'" + s
		}
	}
	return s
}

// StripUnprintable removes non-printable characters, allowing common
// whitespace like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
