package tenant

import "errors"

var (
	// ErrTenantNotFound covers absent, inactive and soft-deleted tenants alike.
	ErrTenantNotFound = errors.New("tenant not found")

	ErrNoTenantInContext = errors.New("no tenant in context")
	ErrInvalidSubdomain  = errors.New("invalid subdomain")
	ErrReservedSubdomain = errors.New("subdomain is reserved")
	ErrSubdomainTaken    = errors.New("subdomain is already taken")
	ErrInvalidDomain     = errors.New("invalid custom domain")
	ErrDomainTaken       = errors.New("custom domain is already in use")
	ErrProtectedTenant   = errors.New("tenant cannot be deleted")
)
