package provision

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/travelsuite/tenancy/pkg/sanitizer"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/pkg/validator"
)

const (
	MaxNameLength     = 100
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinPasswordClass  = 2
)

// Request is the input of a tenant registration.
type Request struct {
	Name          string                `json:"name"`
	Subdomain     string                `json:"subdomain"`
	BusinessTypes []tenant.BusinessType `json:"business_types"`
	AdminName     string                `json:"admin_name"`
	AdminEmail    string                `json:"admin_email"`
	AdminPassword string                `json:"admin_password"`
}

func (r Request) normalized() Request {
	r.Name = sanitizer.Apply(r.Name, sanitizer.SingleLine, sanitizer.Trim)
	r.Subdomain = tenant.NormalizeSubdomain(r.Subdomain)
	r.AdminName = sanitizer.Apply(r.AdminName, sanitizer.SingleLine, sanitizer.Trim)
	r.AdminEmail = sanitizer.NormalizeEmail(r.AdminEmail)

	types := make([]tenant.BusinessType, 0, len(r.BusinessTypes))
	for _, bt := range r.BusinessTypes {
		bt = tenant.BusinessType(sanitizer.Apply(string(bt), sanitizer.Trim, sanitizer.ToUpper))
		if !slices.Contains(types, bt) {
			types = append(types, bt)
		}
	}
	r.BusinessTypes = types
	return r
}

// validate checks everything except subdomain availability. Subdomain format
// errors come first so callers can match ErrInvalidSubdomain and
// ErrReservedSubdomain.
func (r Request) validate() error {
	if err := tenant.ValidateSubdomain(r.Subdomain); err != nil {
		return err
	}

	rules := []validator.Rule{
		validator.Required("name", r.Name),
		validator.MaxLen("name", r.Name, MaxNameLength),
		validator.Required("admin_name", r.AdminName),
		validator.MaxLen("admin_name", r.AdminName, MaxNameLength),
		validator.ValidEmail("admin_email", r.AdminEmail),
		validator.MinLen("admin_password", r.AdminPassword, MinPasswordLength),
		validator.MaxLen("admin_password", r.AdminPassword, MaxPasswordLength),
		validator.PasswordClasses("admin_password", r.AdminPassword, MinPasswordClass),
		{
			Check: func() bool { return len(r.BusinessTypes) > 0 },
			Error: validator.ValidationError{
				Field:          "business_types",
				Message:        "at least one business type is required",
				TranslationKey: "validation.required",
			},
		},
	}
	allowed := tenant.BusinessTypes()
	for _, bt := range r.BusinessTypes {
		rules = append(rules, validator.InList("business_types", bt, allowed))
	}
	if err := validator.Apply(rules...); err != nil {
		if slices.ContainsFunc(r.BusinessTypes, func(bt tenant.BusinessType) bool {
			return !slices.Contains(allowed, bt)
		}) {
			return errors.Join(ErrInvalidBusinessType, err)
		}
		return err
	}
	return nil
}

// LogValue keeps the password out of logs.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.String("subdomain", r.Subdomain),
		slog.String("admin_email", sanitizer.MaskEmail(r.AdminEmail)),
	)
}
