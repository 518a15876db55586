package tenant

import (
	"errors"
	"net/http"
	"strings"

	"github.com/travelsuite/tenancy/pkg/logger"
)

// Middleware resolves the tenant for each request from its host and stores
// it in the request context.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: DefaultErrorHandler,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			host := r.Host
			if cfg.trustForwardedHost {
				if fwd := forwardedHost(r); fwd != "" {
					host = fwd
				}
			}

			t, err := resolver.Resolve(r.Context(), host)
			if err != nil {
				if errors.Is(err, ErrTenantNotFound) {
					if cfg.allowMissingTenant {
						next.ServeHTTP(w, r)
						return
					}
				} else {
					cfg.logger.ErrorContext(r.Context(), "tenant resolution failed",
						logger.Component("tenant.middleware"), logger.Host(host), logger.Error(err))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant rejects requests that reach it without a resolved tenant.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// forwardedHost returns the first value of X-Forwarded-Host.
func forwardedHost(r *http.Request) string {
	v := r.Header.Get("X-Forwarded-Host")
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
