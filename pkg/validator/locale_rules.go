package validator

import (
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// ValidLanguageTag accepts a well-formed BCP 47 tag such as "id" or "en-US".
func ValidLanguageTag(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			_, err := language.Parse(value)
			return err == nil
		},
		Error: newError(field, "must be a valid language tag", "validation.language", nil),
	}
}

// ValidCurrencyCode accepts a three-letter ISO 4217 code known to x/text.
func ValidCurrencyCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 3 {
				return false
			}
			_, err := currency.ParseISO(value)
			return err == nil
		},
		Error: newError(field, "must be a valid ISO 4217 currency code", "validation.currency_code", nil),
	}
}

// ValidTimezone accepts IANA zone names such as "Asia/Jakarta". "Local" is
// rejected because it depends on the host.
func ValidTimezone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" || value == "Local" {
				return false
			}
			_, err := time.LoadLocation(value)
			return err == nil
		},
		Error: newError(field, "must be a valid IANA time zone", "validation.timezone", nil),
	}
}
