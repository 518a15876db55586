// Package tenant decides which customer organization a request is served for.
//
// Config carries the deployment mode (single or multi tenant), the default
// tenant id, the base domain and the registration toggle. It is read once with
// LoadConfig and passed by value.
//
// Directory wraps a Store with lookups by id, subdomain and custom domain,
// availability checks against the reserved list, paginated listing, settings
// updates and soft deletion. Positive lookups can be cached in process
// (NewInMemoryCache) or in Redis (NewRedisCache).
//
// Resolver maps a hostname to a tenant:
//
//	single mode   -> default tenant, hostname ignored
//	multi mode    -> custom domain, else subdomain of the base domain,
//	                 else default tenant for hosts without a subdomain
//
// An unregistered subdomain is reported as ErrTenantNotFound and is never
// replaced by the default tenant. Middleware runs the resolver per request and
// stores the result for FromContext.
package tenant
