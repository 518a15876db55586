package provision

import "errors"

var (
	ErrEmailTaken          = errors.New("provision: email is already registered")
	ErrRegistrationClosed  = errors.New("provision: registration is disabled")
	ErrInvalidBusinessType = errors.New("provision: invalid business type")
)
