// Package api exposes the tenancy layer over HTTP with a chi router.
//
// Every /api request first passes tenant resolution, so handlers always run
// against the tenant serving the request host; unknown sites answer 404 and
// are never redirected to the default tenant. Authenticated routes go
// through access.Guard, which answers 401 before the handler runs, and
// handlers read tenant data only through the caller's access.Context.
//
// Responses use a single JSON envelope:
//
//	{"data": ..., "meta": {...}}
//	{"error": {"code": "subdomain_taken", "message": "Conflict", "request_id": "..."}}
//
// Validation failures carry per-field messages in error.details.
package api
