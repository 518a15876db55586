package tenant

import (
	"strings"

	envconfig "github.com/travelsuite/tenancy/pkg/config"
)

// Mode selects how requests are mapped to tenants.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

const (
	DefaultTenantID   = "default"
	DefaultBaseDomain = "localhost:3000"
)

// Config is the immutable tenancy configuration. It is built once at startup
// and passed by value to every component that needs it.
type Config struct {
	Mode                Mode
	DefaultTenantID     string
	BaseDomain          string
	RegistrationEnabled bool
}

func (c Config) IsSingleTenant() bool { return c.Mode != ModeMulti }

func (c Config) IsMultiTenant() bool { return c.Mode == ModeMulti }

// rawConfig holds the variables as plain strings so parsing cannot fail.
type rawConfig struct {
	Mode                string `env:"TENANT_MODE"`
	DefaultTenantID     string `env:"DEFAULT_TENANT_ID"`
	BaseDomain          string `env:"TENANT_BASE_DOMAIN"`
	RegistrationEnabled string `env:"TENANT_REGISTRATION_ENABLED"`
}

func (r rawConfig) normalize() Config {
	cfg := Config{
		Mode:                ModeSingle,
		DefaultTenantID:     strings.TrimSpace(r.DefaultTenantID),
		BaseDomain:          strings.ToLower(strings.TrimSpace(r.BaseDomain)),
		RegistrationEnabled: strings.EqualFold(strings.TrimSpace(r.RegistrationEnabled), "true"),
	}
	if Mode(strings.ToLower(strings.TrimSpace(r.Mode))) == ModeMulti {
		cfg.Mode = ModeMulti
	}
	if cfg.DefaultTenantID == "" {
		cfg.DefaultTenantID = DefaultTenantID
	}
	if cfg.BaseDomain == "" {
		cfg.BaseDomain = DefaultBaseDomain
	}
	return cfg
}

// LoadConfig reads the tenancy settings from the process environment. Missing
// or unrecognised values fall back to defaults; it never fails.
func LoadConfig() Config {
	var raw rawConfig
	// Every field is a plain string, so parsing cannot fail.
	_ = envconfig.Parse(&raw)
	return raw.normalize()
}

// ParseConfig builds a Config from an explicit variable set, ignoring the
// process environment.
func ParseConfig(vars map[string]string) Config {
	var raw rawConfig
	// Every field is a plain string, so parsing cannot fail.
	_ = envconfig.ParseFromMap(&raw, vars)
	return raw.normalize()
}
