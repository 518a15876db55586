package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

// RoleStore answers the role and membership questions Builder cannot take
// from the session.
type RoleStore interface {
	// HasPlatformRole reports whether an active user holds role with no
	// tenant attached.
	HasPlatformRole(ctx context.Context, userID string, role rbac.RoleName) (bool, error)
	// UserTenantID returns the tenant the user belongs to, if any.
	UserTenantID(ctx context.Context, userID string) (string, bool, error)
}

// TenantSource reads active, non-deleted tenants. GetByID returns
// tenant.ErrTenantNotFound for tenants that are inactive or soft-deleted.
type TenantSource interface {
	GetByID(ctx context.Context, id string) (*tenant.Tenant, error)
	ActiveIDs(ctx context.Context) ([]string, error)
}

// Builder turns sessions into access contexts and answers cross-tenant
// authorization questions.
type Builder struct {
	cfg     tenant.Config
	roles   RoleStore
	tenants TenantSource
	log     *slog.Logger
}

type BuilderOption func(*Builder)

func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

func NewBuilder(cfg tenant.Config, roles RoleStore, tenants TenantSource, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:     cfg,
		roles:   roles,
		tenants: tenants,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Config() tenant.Config { return b.cfg }

// Build derives the access context for s. It fails with ErrUnauthenticated
// when the session has no user.
func (b *Builder) Build(s Session) (Context, error) {
	if !s.Authenticated() {
		return Context{}, ErrUnauthenticated
	}
	return Context{
		tenantID: SessionTenantID(b.cfg, s),
		userID:   s.UserID,
		roles:    rbac.NewRoleSet(s.Roles...),
	}, nil
}

// CheckTenant confirms that the tenant of ac is still active and not deleted.
// Sessions outlive tenants, so a token issued before a soft delete is refused
// with tenant.ErrTenantNotFound.
func (b *Builder) CheckTenant(ctx context.Context, ac Context) error {
	_, err := b.tenants.GetByID(ctx, ac.TenantID())
	if err == nil {
		return nil
	}
	if errors.Is(err, tenant.ErrTenantNotFound) {
		b.log.InfoContext(ctx, "session tenant no longer available",
			logger.Component("access"), logger.UserID(ac.UserID()), logger.TenantID(ac.TenantID()))
		return err
	}
	return fmt.Errorf("check session tenant: %w", err)
}

// IsPlatformAdmin reports whether userID holds an unscoped SUPER_ADMIN role.
// It is the only check that unlocks cross-tenant access.
func (b *Builder) IsPlatformAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := b.roles.HasPlatformRole(ctx, userID, rbac.SuperAdmin)
	if err != nil {
		return false, fmt.Errorf("check platform role: %w", err)
	}
	return ok, nil
}

// AccessibleTenants lists the tenants userID may see: every active tenant for
// a platform admin, otherwise the user's own tenant while it is visible, or
// nothing.
func (b *Builder) AccessibleTenants(ctx context.Context, userID string) ([]string, error) {
	admin, err := b.IsPlatformAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if admin {
		ids, err := b.tenants.ActiveIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active tenants: %w", err)
		}
		return ids, nil
	}

	id, ok, err := b.roles.UserTenantID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user tenant: %w", err)
	}
	if !ok || id == "" {
		return []string{}, nil
	}
	if _, err := b.tenants.GetByID(ctx, id); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("lookup user tenant: %w", err)
	}
	return []string{id}, nil
}

// Authorize permits access to tenantID for the actor in ac. Access to the
// actor's own tenant is always allowed; any other tenant requires a platform
// admin.
func (b *Builder) Authorize(ctx context.Context, ac Context, tenantID string) error {
	if ac.UserID() == "" {
		return ErrUnauthenticated
	}
	if tenantID == ac.TenantID() {
		return nil
	}
	admin, err := b.IsPlatformAdmin(ctx, ac.UserID())
	if err != nil {
		return err
	}
	if !admin {
		b.log.WarnContext(ctx, "cross-tenant access denied",
			logger.Component("access"),
			logger.UserID(ac.UserID()),
			slog.String("requested_tenant_id", tenantID),
		)
		return ErrForbidden
	}
	return nil
}

// RequirePlatformAdmin returns ErrForbidden unless ac belongs to a platform admin.
func (b *Builder) RequirePlatformAdmin(ctx context.Context, ac Context) error {
	if ac.UserID() == "" {
		return ErrUnauthenticated
	}
	admin, err := b.IsPlatformAdmin(ctx, ac.UserID())
	if err != nil {
		return err
	}
	if !admin {
		return ErrForbidden
	}
	return nil
}

// IsAuthError reports whether err should end the request as 401 or 403.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrForbidden)
}
