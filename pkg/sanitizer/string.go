package sanitizer

import (
	"strings"
	"unicode"
)

func Trim(s string) string { return strings.TrimSpace(s) }

func ToLower(s string) string { return strings.ToLower(s) }

func ToUpper(s string) string { return strings.ToUpper(s) }

// SingleLine replaces control characters with spaces and collapses runs of
// whitespace, for names and labels shown in headers and lists.
func SingleLine(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail keeps the first character of the local part and the domain,
// for log output.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
