package scopes

import "errors"

var (
	ErrInvalidScope    = errors.New("scopes: invalid scope format")
	ErrScopeNotAllowed = errors.New("scopes: scope not in allowed list")
)
