package tenant

import "context"

// Store is the persistence port behind Directory. Find methods return only
// active, non-deleted tenants and report ErrTenantNotFound otherwise.
type Store interface {
	FindByID(ctx context.Context, id string) (*Tenant, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	FindByDomain(ctx context.Context, domain string) (*Tenant, error)

	// SubdomainExists ignores the active and deleted flags.
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)

	List(ctx context.Context, params ListParams) ([]*Tenant, int, error)
	ActiveIDs(ctx context.Context) ([]string, error)

	// UpdateSettings returns ErrDomainTaken when the custom domain belongs to
	// another tenant.
	UpdateSettings(ctx context.Context, id string, s Settings) (*Tenant, error)
	SoftDelete(ctx context.Context, id string) (*Tenant, error)
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams selects a page of tenants. Search matches name or subdomain,
// case-insensitively. Soft-deleted tenants are never listed.
type ListParams struct {
	Page       int
	PageSize   int
	Search     string
	ActiveOnly bool
}

// Normalized clamps the page to >= 1 and the size to 1..MaxPageSize, using
// DefaultPageSize when unset.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ListResult is a page of tenants ordered newest first, with the total number
// of matching rows.
type ListResult struct {
	Tenants  []*Tenant `json:"tenants"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
