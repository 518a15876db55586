package binder

import "net/http"

// Query binds URL query parameters to the fields of the struct v points to,
// using the `query` tag for parameter names. Fields without a tag use their
// lowercased name; `query:"-"` skips a field. Absent parameters leave the
// field untouched.
//
//	type listRequest struct {
//		Page   int    `query:"page"`
//		Search string `query:"q"`
//	}
func Query(r *http.Request, v any) error {
	return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
}
