package tenant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/travelsuite/tenancy/pkg/logger"
)

// Lookup is the read side of Directory used by Resolver.
type Lookup interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
}

// Resolver maps an inbound hostname to a tenant.
type Resolver struct {
	cfg     Config
	lookup  Lookup
	metrics *Metrics
	log     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithMetrics(m *Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

func NewResolver(cfg Config, lookup Lookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{cfg: cfg, lookup: lookup, log: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() Config { return r.cfg }

// Resolve returns the tenant serving hostname.
//
// In single-tenant mode the hostname is ignored and the default tenant is
// returned. In multi-tenant mode a custom-domain match wins, then a subdomain
// of the base domain, and hosts carrying no subdomain fall back to the default
// tenant. An unknown or reserved subdomain yields ErrTenantNotFound and never
// the default tenant. Store failures are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, hostname string) (*Tenant, error) {
	t, _, err := r.ResolveWithStrategy(ctx, hostname)
	return t, err
}

// ResolveWithStrategy is Resolve that also reports which path decided.
func (r *Resolver) ResolveWithStrategy(ctx context.Context, hostname string) (*Tenant, Strategy, error) {
	started := time.Now()
	strategy, t, err := r.resolve(ctx, hostname)

	switch {
	case err == nil:
		r.metrics.observe(strategy, OutcomeFound, started)
	case errors.Is(err, ErrTenantNotFound):
		r.metrics.observe(strategy, OutcomeNotFound, started)
		r.log.DebugContext(ctx, "tenant not found",
			logger.Component("tenant.resolver"), logger.Host(hostname), slog.String("strategy", string(strategy)))
	default:
		r.metrics.observe(strategy, OutcomeError, started)
	}
	return t, strategy, err
}

func (r *Resolver) resolve(ctx context.Context, hostname string) (Strategy, *Tenant, error) {
	if r.cfg.IsSingleTenant() {
		t, err := r.lookup.GetByID(ctx, r.cfg.DefaultTenantID)
		return StrategySingle, t, err
	}

	host := NormalizeHost(hostname)
	if host != "" {
		t, err := r.lookup.GetByDomain(ctx, host)
		if err == nil {
			return StrategyDomain, t, nil
		}
		if !errors.Is(err, ErrTenantNotFound) {
			return StrategyDomain, nil, err
		}
	}

	if sub, ok := ExtractSubdomain(host, NormalizeHost(r.cfg.BaseDomain)); ok {
		if IsReservedSubdomain(sub) {
			return StrategySubdomain, nil, ErrTenantNotFound
		}
		t, err := r.lookup.GetBySubdomain(ctx, sub)
		return StrategySubdomain, t, err
	}

	t, err := r.lookup.GetByID(ctx, r.cfg.DefaultTenantID)
	return StrategyDefault, t, err
}
