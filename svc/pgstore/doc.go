// Package pgstore implements the tenancy, provisioning and access ports on
// PostgreSQL through pgx. The schema lives in the migrations package; its
// unique indexes on subdomain, custom domain and email are what settle
// concurrent registrations.
package pgstore
