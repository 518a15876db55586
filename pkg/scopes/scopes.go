package scopes

import (
	"slices"
	"strings"
)

const (
	// Separator joins scopes in their string form.
	Separator = " "
	// Wildcard grants every scope.
	Wildcard = "*"
	// Delimiter separates the resource from the action ("bookings.read").
	Delimiter = "."
)

// Parse splits a space-separated scope string. Empty input yields nil.
func Parse(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func Join(scopes []string) string {
	return strings.Join(scopes, Separator)
}

// Matches reports whether pattern grants scope. A pattern is an exact scope,
// the global wildcard "*", or a namespace wildcard such as "finance.*", which
// grants every scope below "finance." but not "finance" itself.
func Matches(scope, pattern string) bool {
	if scope == pattern || pattern == Wildcard {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, Delimiter+Wildcard); ok {
		return strings.HasPrefix(scope, prefix+Delimiter)
	}
	return false
}

// Has reports whether any granted pattern matches scope.
func Has(granted []string, scope string) bool {
	return slices.ContainsFunc(granted, func(p string) bool { return Matches(scope, p) })
}

// HasAll reports whether every required scope is granted. An empty
// requirement is always satisfied.
func HasAll(granted, required []string) bool {
	for _, r := range required {
		if !Has(granted, r) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one required scope is granted. An empty
// requirement is always satisfied.
func HasAny(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	return slices.ContainsFunc(required, func(r string) bool { return Has(granted, r) })
}

// Validate checks that every scope is well formed and overlaps at least one
// known scope. It returns ErrInvalidScope or ErrScopeNotAllowed for the
// first offending entry.
func Validate(scopes, known []string) error {
	for _, s := range scopes {
		if !wellFormed(s) {
			return ErrInvalidScope
		}
		if s == Wildcard {
			continue
		}
		if !slices.ContainsFunc(known, func(k string) bool {
			return Matches(s, k) || Matches(k, s)
		}) {
			return ErrScopeNotAllowed
		}
	}
	return nil
}

// Normalize removes duplicates and sorts. Empty input yields nil.
func Normalize(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}
	out := slices.Clone(scopes)
	slices.Sort(out)
	return slices.Compact(out)
}

func wellFormed(s string) bool {
	if s == Wildcard {
		return true
	}
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	parts := strings.Split(s, Delimiter)
	for i, p := range parts {
		if p == "" {
			return false
		}
		if p == Wildcard && i != len(parts)-1 {
			return false
		}
		if p != Wildcard && strings.Contains(p, Wildcard) {
			return false
		}
	}
	return true
}
