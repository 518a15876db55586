package tenant

import (
	"errors"
	"maps"
	"strings"

	"github.com/travelsuite/tenancy/pkg/sanitizer"
	"github.com/travelsuite/tenancy/pkg/validator"
)

// Settings is a partial update of a tenant's editable attributes. Nil fields
// are left unchanged. An empty Domain clears the custom domain. Map fields
// replace the stored map when non-nil.
type Settings struct {
	Name        *string           `json:"name,omitempty"`
	LogoURL     *string           `json:"logo_url,omitempty"`
	Domain      *string           `json:"domain,omitempty"`
	Currency    *string           `json:"currency,omitempty"`
	Language    *string           `json:"language,omitempty"`
	Timezone    *string           `json:"timezone,omitempty"`
	Features    map[string]bool   `json:"features,omitempty"`
	Theme       map[string]string `json:"theme,omitempty"`
	Terminology map[string]string `json:"terminology,omitempty"`
}

// Normalized trims text fields, lowercases the domain and uppercases the
// currency code.
func (s Settings) Normalized() Settings {
	norm := func(p *string, fns ...func(string) string) *string {
		if p == nil {
			return nil
		}
		v := sanitizer.Apply(*p, fns...)
		return &v
	}
	s.Name = norm(s.Name, sanitizer.SingleLine)
	s.LogoURL = norm(s.LogoURL, sanitizer.Trim)
	s.Domain = norm(s.Domain, NormalizeHost)
	s.Currency = norm(s.Currency, sanitizer.Trim, sanitizer.ToUpper)
	s.Language = norm(s.Language, sanitizer.Trim)
	s.Timezone = norm(s.Timezone, sanitizer.Trim)
	return s
}

// Validate checks every set field. A domain that sits under baseDomain is
// rejected with ErrInvalidDomain because it would shadow the subdomain
// namespace. Validation failures are returned as validator.ValidationErrors.
func (s Settings) Validate(baseDomain string) error {
	var rules []validator.Rule
	if s.Name != nil {
		rules = append(rules, validator.Required("name", *s.Name), validator.MaxLen("name", *s.Name, 120))
	}
	if s.LogoURL != nil {
		rules = append(rules, validator.MaxLen("logo_url", *s.LogoURL, 2048))
	}
	if s.Currency != nil {
		rules = append(rules, validator.ValidCurrencyCode("currency", *s.Currency))
	}
	if s.Language != nil {
		rules = append(rules, validator.ValidLanguageTag("language", *s.Language))
	}
	if s.Timezone != nil {
		rules = append(rules, validator.ValidTimezone("timezone", *s.Timezone))
	}
	for key, color := range s.Theme {
		rules = append(rules, validator.ValidHexColor("theme."+key, color))
	}
	if err := validator.Apply(rules...); err != nil {
		return err
	}

	if s.Domain != nil && *s.Domain != "" {
		d := *s.Domain
		if err := validator.Apply(validator.ValidDomainName("domain", d)); err != nil {
			return errors.Join(ErrInvalidDomain, err)
		}
		base := NormalizeHost(baseDomain)
		if base != "" && (d == base || strings.HasSuffix(d, "."+base)) {
			return errors.Join(ErrInvalidDomain, validator.ValidationErrors{{
				Field:          "domain",
				Message:        "must not be part of the platform domain",
				TranslationKey: "validation.domain_platform",
			}})
		}
	}
	return nil
}

// Apply writes the set fields onto t.
func (s Settings) Apply(t *Tenant) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Name, s.Name)
	set(&t.LogoURL, s.LogoURL)
	set(&t.Domain, s.Domain)
	set(&t.Currency, s.Currency)
	set(&t.Language, s.Language)
	set(&t.Timezone, s.Timezone)
	if s.Features != nil {
		t.Features = maps.Clone(s.Features)
	}
	if s.Theme != nil {
		t.Theme = maps.Clone(s.Theme)
	}
	if s.Terminology != nil {
		t.Terminology = maps.Clone(s.Terminology)
	}
}

// Empty reports whether the update changes nothing.
func (s Settings) Empty() bool {
	return s.Name == nil && s.LogoURL == nil && s.Domain == nil && s.Currency == nil &&
		s.Language == nil && s.Timezone == nil && s.Features == nil && s.Theme == nil &&
		s.Terminology == nil
}
