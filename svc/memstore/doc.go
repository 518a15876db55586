// Package memstore is an in-memory datastore for single-process deployments
// and tests. It implements tenant.Store, provision.UnitOfWork,
// access.RoleStore and access.CredentialStore with the same unique
// constraints as the Postgres schema.
package memstore
