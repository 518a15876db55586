package access

import (
	"context"
	"log/slog"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/rbac"
)

// Context is the per-request authorization context. It is built by Builder,
// never mutated, and must not outlive the request.
type Context struct {
	tenantID string
	userID   string
	roles    rbac.RoleSet
}

func (c Context) TenantID() string { return c.tenantID }

func (c Context) UserID() string { return c.userID }

// Roles returns a copy of the role names.
func (c Context) Roles() []string { return c.roles.Strings() }

func (c Context) RoleSet() rbac.RoleSet { return c.roles }

// IsSuperAdmin reports whether the session carries SUPER_ADMIN. It reflects
// the session claim only and is meant for UI gating. Cross-tenant access must
// go through Builder.IsPlatformAdmin.
func (c Context) IsSuperAdmin() bool {
	return c.roles.Has(rbac.SuperAdmin)
}

func (c Context) HasRole(roles ...rbac.RoleName) bool {
	return c.roles.HasAny(roles...)
}

func (c Context) Can(auth *rbac.Authorizer, permission string) bool {
	return auth.Can(c.roles, permission)
}

// Filter scopes a query to the context tenant.
func (c Context) Filter(extra map[string]any) Filter {
	return TenantFilter(c.tenantID, extra)
}

// Data stamps the context tenant onto a record being created.
func (c Context) Data(data map[string]any) Data {
	return TenantData(c.tenantID, data)
}

type contextKey struct{}

func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

// LoggerExtractor adds user_id for authenticated requests.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ac, ok := FromContext(ctx); ok {
			return logger.UserID(ac.UserID()), true
		}
		return slog.Attr{}, false
	}
}
