package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// slugTitle flattens a segment title into a filesystem-safe fragment
// for clip names. Accented characters decompose and shed their marks;
// any other non-alphanumeric run collapses to a single dash.
func slugTitle(s string) string {
	s = norm.NFKD.String(s)
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r > unicode.MaxASCII:
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
