package provision

import (
	"context"

	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

// Tx is the set of writes a provisioning run may perform. Implementations
// return tenant.ErrSubdomainTaken and ErrEmailTaken for unique violations,
// at the latest when the unit of work commits.
type Tx interface {
	TenantExists(ctx context.Context, id string) (bool, error)
	InsertTenant(ctx context.Context, t *tenant.Tenant) error
	InsertRoles(ctx context.Context, roles []Role) error
	InsertUser(ctx context.Context, u User) error
	AssignRole(ctx context.Context, userID, roleID string) error
	InsertEmployee(ctx context.Context, e Employee) error

	PlatformRoleID(ctx context.Context, name rbac.RoleName) (string, bool, error)
	UserIDByEmail(ctx context.Context, email string) (string, bool, error)
}

// UnitOfWork runs fn atomically. Nothing fn wrote is visible to other
// readers unless fn returns nil and the commit succeeds. A cancelled ctx
// rolls the work back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// SubdomainChecker reports whether a subdomain can still be registered.
type SubdomainChecker interface {
	IsSubdomainAvailable(ctx context.Context, subdomain string) (bool, error)
}
