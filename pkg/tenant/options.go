package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler renders a resolution failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	errorHandler       ErrorHandler
	skipPaths          []string
	trustForwardedHost bool
	allowMissingTenant bool
	logger             *slog.Logger
}

// Option configures Middleware.
type Option func(*config)

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithSkipPaths bypasses resolution for requests whose path starts with any
// of the given prefixes.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) { c.skipPaths = append(c.skipPaths, paths...) }
}

// WithTrustForwardedHost reads X-Forwarded-Host before Host. Enable it only
// behind a proxy that overwrites the header.
func WithTrustForwardedHost(trust bool) Option {
	return func(c *config) { c.trustForwardedHost = trust }
}

// WithOptionalTenant lets requests for unknown sites through without a
// tenant in context instead of answering 404. Store failures still fail.
func WithOptionalTenant(optional bool) Option {
	return func(c *config) { c.allowMissingTenant = optional }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// DefaultErrorHandler answers 404 for unknown tenants and 500 otherwise.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "tenant not found", http.StatusNotFound)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
