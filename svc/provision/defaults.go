package provision

import "maps"

// Defaults are the locale and branding values a new tenant starts with.
type Defaults struct {
	Currency string
	Language string
	Timezone string
	Features map[string]bool
	Theme    map[string]string
}

// DefaultSettings returns the stock defaults for Indonesian agencies.
func DefaultSettings() Defaults {
	return Defaults{
		Currency: "IDR",
		Language: "id",
		Timezone: "Asia/Jakarta",
		Features: map[string]bool{
			"bookings":  true,
			"finance":   true,
			"hr":        true,
			"inventory": true,
		},
		Theme: map[string]string{
			"primary":   "#0F766E",
			"secondary": "#F59E0B",
		},
	}
}

func (d Defaults) clone() Defaults {
	d.Features = maps.Clone(d.Features)
	d.Theme = maps.Clone(d.Theme)
	return d
}
