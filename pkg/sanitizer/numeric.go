package sanitizer

import "cmp"

// Clamp bounds value to [lo, hi].
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	return min(max(value, lo), hi)
}

// DefaultIfZero substitutes def for the zero value.
func DefaultIfZero[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}
	return value
}
