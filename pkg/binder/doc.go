// Package binder decodes HTTP request data into Go structs.
//
// JSON reads a size-limited application/json body in strict mode: unknown
// fields and trailing data are errors. Query maps URL query parameters onto
// struct fields tagged with `query`, supporting strings, integers, floats,
// booleans, pointers for optional values and slices (repeated or
// comma-separated parameters).
//
//	var req provision.Request
//	if err := binder.JSON(r, &req); err != nil {
//		// 400 or 415
//	}
//
// Every failure wraps one of the package errors so callers can map it to a
// status code with errors.Is.
package binder
