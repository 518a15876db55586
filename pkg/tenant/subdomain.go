package tenant

import (
	"errors"
	"regexp"
	"strings"

	"github.com/travelsuite/tenancy/pkg/validator"
)

const (
	MinSubdomainLength = 3
	MaxSubdomainLength = 63
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// ExtractSubdomain derives the tenant label from hostname relative to
// baseDomain. Ports are ignored on both sides. It reports false for bare local
// access, for hosts outside the base domain, for the base domain itself and
// for "www". The comparison is case-sensitive; callers lowercase first.
func ExtractSubdomain(hostname, baseDomain string) (string, bool) {
	host := stripPort(hostname)
	base := stripPort(baseDomain)

	if host == "localhost" || host == "127.0.0.1" {
		return "", false
	}
	if base == "" || !strings.HasSuffix(host, base) {
		return "", false
	}

	prefix := strings.TrimSuffix(host, base)
	if prefix == "" {
		return "", false
	}
	// "evilapp.test" must not match base "app.test".
	sub, ok := strings.CutSuffix(prefix, ".")
	if !ok || sub == "" || sub == "www" {
		return "", false
	}
	return sub, true
}

// NormalizeHost lowercases host and removes surrounding space, any port and a
// trailing root dot.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimSuffix(stripPort(host), ".")
}

// NormalizeSubdomain lowercases and trims a subdomain for storage and lookup.
func NormalizeSubdomain(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateSubdomain checks the registration format of name (3-63 characters
// of [a-z0-9-] without a leading or trailing hyphen) and that it is not
// reserved. The returned error matches ErrInvalidSubdomain or
// ErrReservedSubdomain and carries validator.ValidationErrors for the field.
func ValidateSubdomain(name string) error {
	const field = "subdomain"

	err := validator.Apply(
		validator.MinLen(field, name, MinSubdomainLength),
		validator.MaxLen(field, name, MaxSubdomainLength),
		validator.Rule{
			Check: func() bool { return subdomainPattern.MatchString(name) },
			Error: validator.ValidationError{
				Field:          field,
				Message:        "may contain only lowercase letters, digits and inner hyphens",
				TranslationKey: "validation.subdomain",
			},
		},
	)
	if err != nil {
		return errors.Join(ErrInvalidSubdomain, err)
	}

	if IsReservedSubdomain(name) {
		return errors.Join(ErrReservedSubdomain, validator.ValidationErrors{{
			Field:          field,
			Message:        "is reserved",
			TranslationKey: "validation.subdomain_reserved",
		}})
	}
	return nil
}

func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if end := strings.IndexByte(host, ']'); end > 0 {
			return host[1:end]
		}
		return host
	}
	// More than one colon without brackets is a bare IPv6 address.
	if strings.Count(host, ":") == 1 {
		host, _, _ = strings.Cut(host, ":")
	}
	return host
}
