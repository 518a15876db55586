package tenant

import (
	"maps"
	"slices"
	"time"
)

// BusinessType is a line of business a travel agency can enable.
type BusinessType string

const (
	BusinessUmroh     BusinessType = "UMROH"
	BusinessHaji      BusinessType = "HAJI"
	BusinessTour      BusinessType = "TOUR"
	BusinessTicketing BusinessType = "TICKETING"
	BusinessVisa      BusinessType = "VISA"
)

// BusinessTypes lists every supported business type.
func BusinessTypes() []BusinessType {
	return []BusinessType{BusinessUmroh, BusinessHaji, BusinessTour, BusinessTicketing, BusinessVisa}
}

// Tenant is an isolated customer organization with its branding and locale
// defaults. Soft-deleted tenants are never returned by lookups.
type Tenant struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Subdomain     string            `json:"subdomain"`
	Domain        string            `json:"domain,omitempty"`
	LogoURL       string            `json:"logo_url,omitempty"`
	BusinessTypes []BusinessType    `json:"business_types"`
	Currency      string            `json:"currency"`
	Language      string            `json:"language"`
	Timezone      string            `json:"timezone"`
	Features      map[string]bool   `json:"features"`
	Theme         map[string]string `json:"theme"`
	Terminology   map[string]string `json:"terminology"`
	Active        bool              `json:"active"`
	Deleted       bool              `json:"-"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Visible reports whether the tenant may be served: active and not deleted.
func (t *Tenant) Visible() bool {
	return t != nil && t.Active && !t.Deleted
}

// FeatureEnabled reports whether feature is switched on. Unknown features are off.
func (t *Tenant) FeatureEnabled(feature string) bool {
	return t != nil && t.Features[feature]
}

// Term returns the tenant's wording for key, or fallback when not overridden.
func (t *Tenant) Term(key, fallback string) string {
	if t != nil {
		if v, ok := t.Terminology[key]; ok && v != "" {
			return v
		}
	}
	return fallback
}

// Clone returns a deep copy so cached values cannot be mutated by callers.
func (t *Tenant) Clone() *Tenant {
	if t == nil {
		return nil
	}
	c := *t
	c.BusinessTypes = slices.Clone(t.BusinessTypes)
	c.Features = maps.Clone(t.Features)
	c.Theme = maps.Clone(t.Theme)
	c.Terminology = maps.Clone(t.Terminology)
	return &c
}
