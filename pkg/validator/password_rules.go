package validator

import (
	"fmt"
	"unicode"
)

// PasswordClasses counts how many of lowercase, uppercase, digit and other
// character classes appear in value and fails below min.
func PasswordClasses(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return characterClasses(value) >= min },
		Error: newError(field,
			fmt.Sprintf("must mix at least %d of: lowercase, uppercase, digits, symbols", min),
			"validation.password_classes", map[string]any{"min": min}),
	}
}

func characterClasses(s string) int {
	var lower, upper, digit, other bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, b := range []bool{lower, upper, digit, other} {
		if b {
			n++
		}
	}
	return n
}
