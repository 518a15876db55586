package tenant

import (
	"slices"
	"strings"
)

var reservedSubdomains = map[string]struct{}{
	"www": {}, "api": {}, "admin": {}, "app": {}, "dashboard": {}, "portal": {},
	"mail": {}, "email": {}, "smtp": {}, "ftp": {}, "cdn": {}, "static": {},
	"assets": {}, "docs": {}, "help": {}, "support": {}, "status": {}, "blog": {},
	"staging": {}, "dev": {}, "test": {}, "demo": {}, "auth": {}, "login": {},
	"register": {}, "billing": {}, "default": {}, "root": {}, "system": {},
}

// IsReservedSubdomain reports whether name is kept for infrastructure use.
// The comparison is case-insensitive.
func IsReservedSubdomain(name string) bool {
	_, ok := reservedSubdomains[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ReservedSubdomains returns the reserved names in sorted order.
func ReservedSubdomains() []string {
	out := make([]string, 0, len(reservedSubdomains))
	for name := range reservedSubdomains {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
