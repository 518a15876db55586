package api

import (
	"errors"
	"net/http"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/binder"
	"github.com/travelsuite/tenancy/pkg/ratelimiter"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/pkg/validator"
	"github.com/travelsuite/tenancy/svc/provision"
)

// HTTPError pairs a status code with a stable machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrValidation           = HTTPError{Code: http.StatusBadRequest, Key: "validation_error"}
	ErrUnauthorized         = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrInvalidCredentials   = HTTPError{Code: http.StatusUnauthorized, Key: "invalid_credentials"}
	ErrForbidden            = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrRegistrationClosed   = HTTPError{Code: http.StatusForbidden, Key: "registration_closed"}
	ErrTenantProtected      = HTTPError{Code: http.StatusForbidden, Key: "tenant_protected"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrTenantNotFound       = HTTPError{Code: http.StatusNotFound, Key: "tenant_not_found"}
	ErrConflict             = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternal             = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrUnavailable          = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// classify maps a domain error onto its HTTP rendering. Unknown errors are
// internal.
func classify(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr

	case errors.Is(err, access.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, access.ErrUnauthenticated):
		return ErrUnauthorized
	case errors.Is(err, access.ErrForbidden), errors.Is(err, rbac.ErrInsufficientPermissions):
		return ErrForbidden
	case errors.Is(err, provision.ErrRegistrationClosed):
		return ErrRegistrationClosed
	case errors.Is(err, tenant.ErrProtectedTenant):
		return ErrTenantProtected

	case errors.Is(err, tenant.ErrSubdomainTaken):
		return HTTPError{Code: http.StatusConflict, Key: "subdomain_taken"}
	case errors.Is(err, tenant.ErrDomainTaken):
		return HTTPError{Code: http.StatusConflict, Key: "domain_taken"}
	case errors.Is(err, provision.ErrEmailTaken):
		return HTTPError{Code: http.StatusConflict, Key: "email_taken"}

	case errors.Is(err, validator.ErrValidationFailed),
		errors.Is(err, tenant.ErrInvalidSubdomain),
		errors.Is(err, tenant.ErrReservedSubdomain),
		errors.Is(err, tenant.ErrInvalidDomain),
		errors.Is(err, provision.ErrInvalidBusinessType):
		return ErrValidation

	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestTooLarge
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseQuery):
		return ErrBadRequest

	case errors.Is(err, tenant.ErrTenantNotFound), errors.Is(err, tenant.ErrNoTenantInContext):
		return ErrTenantNotFound

	case errors.Is(err, ratelimiter.ErrStoreUnavailable):
		return ErrUnavailable
	}
	return ErrInternal
}
