package rbac

import (
	"github.com/travelsuite/tenancy/pkg/scopes"
)

// Authorizer answers permission questions for role sets against a catalog.
type Authorizer struct {
	catalog *Catalog
}

// NewAuthorizer returns an Authorizer over catalog, or over DefaultCatalog
// when catalog is nil.
func NewAuthorizer(catalog *Catalog) *Authorizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Authorizer{catalog: catalog}
}

// Catalog returns the catalog the authorizer checks against.
func (a *Authorizer) Catalog() *Catalog {
	return a.catalog
}

// Can reports whether any role in set grants permission.
func (a *Authorizer) Can(set RoleSet, permission string) bool {
	return scopes.Has(a.catalog.PermissionsFor(set), permission)
}

// CanAll reports whether set grants every listed permission.
func (a *Authorizer) CanAll(set RoleSet, permissions ...string) bool {
	return scopes.HasAll(a.catalog.PermissionsFor(set), permissions)
}

// CanAny reports whether set grants at least one listed permission.
func (a *Authorizer) CanAny(set RoleSet, permissions ...string) bool {
	return scopes.HasAny(a.catalog.PermissionsFor(set), permissions)
}

// Require returns ErrInsufficientPermissions unless set grants permission.
func (a *Authorizer) Require(set RoleSet, permission string) error {
	if !a.Can(set, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}
