package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/clientip"
	"github.com/travelsuite/tenancy/pkg/httpserver"
	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/ratelimiter"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/requestid"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

// EmployeeStore reads employee records through a tenant-scoped filter.
type EmployeeStore interface {
	Employees(ctx context.Context, f access.Filter) ([]provision.Employee, error)
}

// Services are the collaborators the API is composed from.
type Services struct {
	Directory   *tenant.Directory
	Resolver    *tenant.Resolver
	Builder     *access.Builder
	Sessions    *access.JWTSessions
	Login       *access.PasswordLogin
	Provisioner *provision.Provisioner
	Employees   EmployeeStore
	Authorizer  *rbac.Authorizer
}

// Server is the HTTP surface of the tenancy layer.
type Server struct {
	cfg            tenant.Config
	svc            Services
	log            *slog.Logger
	metrics        *Metrics
	gatherer       prometheus.Gatherer
	checks         []httpserver.Check
	trustForwarded bool
	limiter        *ratelimiter.Bucket
	errs           errorRenderer
	guard          *access.Guard
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records request metrics and serves g on /metrics.
func WithMetrics(m *Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithReadinessChecks adds probes reported by /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithTrustForwardedHost resolves tenants from X-Forwarded-Host.
func WithTrustForwardedHost(trust bool) Option {
	return func(s *Server) { s.trustForwarded = trust }
}

// WithRateLimiter throttles login, registration and subdomain lookups per
// client address.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Server) { s.limiter = b }
}

func New(cfg tenant.Config, svc Services, opts ...Option) *Server {
	s := &Server{cfg: cfg, svc: svc, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if s.svc.Authorizer == nil {
		s.svc.Authorizer = rbac.NewAuthorizer(nil)
	}
	s.errs = errorRenderer{log: s.log}
	s.guard = access.NewGuard(svc.Builder, svc.Sessions,
		access.WithGuardErrorHandler(s.errs.render),
		access.WithGuardLogger(s.log),
	)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(s.trustForwarded))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) { s.errs.render(w, r, ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errs.render(w, r, HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"})
	})

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(s.log, s.checks...))
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(tenant.Middleware(s.svc.Resolver,
			tenant.WithErrorHandler(s.errs.render),
			tenant.WithTrustForwardedHost(s.trustForwarded),
			tenant.WithLogger(s.log),
		))

		r.Get("/site", s.site)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Get("/subdomains/suggestions", s.subdomainSuggestions)
			r.Get("/subdomains/{name}/availability", s.subdomainAvailability)
			r.Post("/register", s.register)
			r.Post("/auth/login", s.login)
		})

		r.Get("/me", s.guard.WithTenant(s.me))
		r.Get("/employees", s.guard.WithTenant(s.employees))
		r.Patch("/tenant/settings", s.guard.WithTenant(s.updateOwnSettings))

		r.Route("/admin/tenants", func(r chi.Router) {
			r.Get("/", s.guard.WithTenant(s.listTenants))
			r.Patch("/{id}/settings", s.guard.WithTenant(s.updateTenantSettings))
			r.Delete("/{id}", s.guard.WithTenant(s.deleteTenant))
		})
	})

	return r
}

// rateLimit applies the configured limiter keyed by client address. Buckets
// are shared across tenants so hopping between subdomains does not reset them.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return ratelimiter.Middleware(s.limiter, ratelimiter.Prefix("api", clientip.Key),
		ratelimiter.WithDeniedHandler(func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result, err error) {
			if err != nil {
				s.errs.render(w, r, err)
				return
			}
			s.log.WarnContext(r.Context(), "rate limit exceeded",
				logger.Component("api"), slog.String("path", r.URL.Path), logger.Event("ratelimit.denied"))
			s.errs.render(w, r, ErrTooManyRequests)
		}),
	)(next)
}
