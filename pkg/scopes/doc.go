// Package scopes matches dotted permission strings such as "bookings.read"
// against granted patterns. "*" grants everything and "finance.*" grants every
// permission in the finance namespace.
package scopes
