package access

import "errors"

var (
	ErrUnauthenticated = errors.New("access: authentication required")
	ErrForbidden       = errors.New("access: forbidden")
	ErrNoAccessContext = errors.New("access: no access context in request")
)
