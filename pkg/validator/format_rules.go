package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	labelRegex    = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)
	tldRegex      = regexp.MustCompile(`^[a-z]{2,63}$`)
)

// ValidEmail accepts a bare address with a dotted domain. Display-name forms
// such as "Ann <ann@example.com>" are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			labels := strings.Split(domain, ".")
			if len(labels) < 2 {
				return false
			}
			for _, l := range labels {
				if l == "" {
					return false
				}
			}
			return true
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// ValidDomainName accepts a lower- or mixed-case hostname of at least two
// labels, each 1-63 characters, with an alphabetic top-level label.
func ValidDomainName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			v := strings.ToLower(value)
			if v == "" || len(v) > 253 {
				return false
			}
			labels := strings.Split(v, ".")
			if len(labels) < 2 {
				return false
			}
			for _, l := range labels {
				if !labelRegex.MatchString(l) {
					return false
				}
			}
			return tldRegex.MatchString(labels[len(labels)-1])
		},
		Error: newError(field, "must be a valid domain name", "validation.domain_name", nil),
	}
}

// ValidHexColor accepts "#abc" and "#aabbcc" forms.
func ValidHexColor(field, value string) Rule {
	return Rule{
		Check: func() bool { return hexColorRegex.MatchString(value) },
		Error: newError(field, "must be a hex color such as #0F766E", "validation.hex_color", nil),
	}
}
