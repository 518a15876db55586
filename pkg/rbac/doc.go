// Package rbac defines the closed set of tenant roles and the permissions
// each of them grants.
//
// Roles and their permissions live in an embedded YAML catalog. A role may
// inherit other roles; inheritance is flattened once when the catalog is
// parsed, and cycles or chains deeper than MaxInheritanceDepth are rejected.
//
//	auth := rbac.NewAuthorizer(rbac.DefaultCatalog())
//	roles := rbac.NewRoleSet("FINANCE")
//	if auth.Can(roles, "finance.approve") {
//		// ...
//	}
//
// Permissions are dotted scopes matched with package scopes, so "*" grants
// everything and "finance.*" grants a whole namespace.
package rbac
