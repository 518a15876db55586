// Package access builds the per-request authorization context and holds the
// rules that keep tenant data isolated.
//
// A Builder turns an authenticated Session into an immutable Context. In
// single-tenant mode the tenant claim of the session is ignored and the
// default tenant is used; SessionTenantID is the only place that rule lives.
//
// Every read or write against tenant-scoped data goes through TenantFilter or
// TenantData (or the Context shortcuts Filter and Data), so each query carries
// the tenant id and excludes soft-deleted rows.
//
// Two super-admin checks exist. Context.IsSuperAdmin looks at the session
// roles and is only fit for UI decisions. Builder.IsPlatformAdmin asks the
// RoleStore for an unscoped SUPER_ADMIN role and is the only check that
// Authorize and AccessibleTenants accept for cross-tenant access.
//
//	guard := access.NewGuard(builder, access.NewJWTSessions(tokens, 0))
//	r.Get("/api/bookings", guard.WithTenant(func(w http.ResponseWriter, r *http.Request, ac access.Context) {
//		rows, err := bookings.Find(r.Context(), ac.Filter(nil))
//		// ...
//	}))
package access
