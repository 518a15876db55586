package tenant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/travelsuite/tenancy/pkg/logger"
)

// DefaultCacheTTL is how long a positive lookup stays cached.
const DefaultCacheTTL = 5 * time.Minute

// Directory answers tenant lookups on top of a Store, with an optional cache
// for positive results. Availability checks and listings always reach the store.
type Directory struct {
	store      Store
	cache      Cache
	ttl        time.Duration
	baseDomain string
	protected  map[string]struct{}
	log        *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithCache enables caching. A non-positive ttl selects DefaultCacheTTL.
func WithCache(c Cache, ttl time.Duration) DirectoryOption {
	return func(d *Directory) {
		if c == nil {
			return
		}
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		d.cache, d.ttl = c, ttl
	}
}

// WithBaseDomain rejects custom domains that fall under the platform domain.
func WithBaseDomain(base string) DirectoryOption {
	return func(d *Directory) { d.baseDomain = base }
}

// WithProtectedTenants lists tenant ids that may not be soft-deleted.
func WithProtectedTenants(ids ...string) DirectoryOption {
	return func(d *Directory) {
		for _, id := range ids {
			d.protected[id] = struct{}{}
		}
	}
}

func WithDirectoryLogger(l *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		if l != nil {
			d.log = l
		}
	}
}

func NewDirectory(store Store, opts ...DirectoryOption) *Directory {
	d := &Directory{
		store:     store,
		cache:     NewNoOpCache(),
		protected: map[string]struct{}{},
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetByID returns the active, non-deleted tenant with id.
func (d *Directory) GetByID(ctx context.Context, id string) (*Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrTenantNotFound
	}
	return d.lookup(ctx, cacheKeyID(id), func() (*Tenant, error) {
		return d.store.FindByID(ctx, id)
	})
}

// GetBySubdomain matches the lowercased subdomain exactly.
func (d *Directory) GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	sub := NormalizeSubdomain(subdomain)
	if sub == "" {
		return nil, ErrTenantNotFound
	}
	return d.lookup(ctx, cacheKeySubdomain(sub), func() (*Tenant, error) {
		return d.store.FindBySubdomain(ctx, sub)
	})
}

// GetByDomain matches the custom domain exactly after normalising case and
// stripping any port.
func (d *Directory) GetByDomain(ctx context.Context, domain string) (*Tenant, error) {
	host := NormalizeHost(domain)
	if host == "" {
		return nil, ErrTenantNotFound
	}
	return d.lookup(ctx, cacheKeyDomain(host), func() (*Tenant, error) {
		return d.store.FindByDomain(ctx, host)
	})
}

// IsSubdomainAvailable is false for reserved names and for any subdomain held
// by an existing tenant, including inactive and soft-deleted ones.
func (d *Directory) IsSubdomainAvailable(ctx context.Context, candidate string) (bool, error) {
	sub := NormalizeSubdomain(candidate)
	if sub == "" || IsReservedSubdomain(sub) {
		return false, nil
	}
	exists, err := d.store.SubdomainExists(ctx, sub)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ListTenants returns a page of non-deleted tenants, newest first.
func (d *Directory) ListTenants(ctx context.Context, params ListParams) (ListResult, error) {
	params = params.Normalized()
	params.Search = strings.TrimSpace(params.Search)

	tenants, total, err := d.store.List(ctx, params)
	if err != nil {
		return ListResult{}, err
	}
	if tenants == nil {
		tenants = []*Tenant{}
	}
	return ListResult{Tenants: tenants, Total: total, Page: params.Page, PageSize: params.PageSize}, nil
}

// ActiveIDs returns the ids of every active, non-deleted tenant.
func (d *Directory) ActiveIDs(ctx context.Context) ([]string, error) {
	return d.store.ActiveIDs(ctx)
}

// UpdateSettings validates and applies s to tenant id, then drops every cache
// entry for both the old and the new identity of the tenant.
func (d *Directory) UpdateSettings(ctx context.Context, id string, s Settings) (*Tenant, error) {
	s = s.Normalized()
	if err := s.Validate(d.baseDomain); err != nil {
		return nil, err
	}

	before, err := d.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		return before, nil
	}

	after, err := d.store.UpdateSettings(ctx, id, s)
	if err != nil {
		return nil, err
	}
	d.Invalidate(ctx, before, after)

	d.log.InfoContext(ctx, "tenant settings updated",
		logger.Component("tenant.directory"), logger.TenantID(id), logger.Event("tenant.settings_updated"))
	return after, nil
}

// SoftDelete marks a tenant deleted. Protected tenants are refused with
// ErrProtectedTenant.
func (d *Directory) SoftDelete(ctx context.Context, id string) error {
	if _, ok := d.protected[id]; ok {
		return ErrProtectedTenant
	}
	deleted, err := d.store.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	d.Invalidate(ctx, deleted)

	d.log.InfoContext(ctx, "tenant soft-deleted",
		logger.Component("tenant.directory"), logger.TenantID(id), logger.Event("tenant.deleted"))
	return nil
}

// Invalidate removes every cached entry for the given tenants.
func (d *Directory) Invalidate(ctx context.Context, tenants ...*Tenant) {
	var keys []string
	for _, t := range tenants {
		keys = append(keys, cacheKeysFor(t)...)
	}
	if len(keys) > 0 {
		d.cache.Delete(ctx, keys...)
	}
}

func (d *Directory) lookup(ctx context.Context, key string, fetch func() (*Tenant, error)) (*Tenant, error) {
	if t, ok := d.cache.Get(ctx, key); ok && t.Visible() {
		return t, nil
	}

	t, err := fetch()
	if err != nil {
		if !errors.Is(err, ErrTenantNotFound) {
			d.log.ErrorContext(ctx, "tenant lookup failed",
				logger.Component("tenant.directory"), slog.String("key", key), logger.Error(err))
		}
		return nil, err
	}
	if !t.Visible() {
		return nil, ErrTenantNotFound
	}

	d.cache.Set(ctx, key, t, d.ttl)
	return t, nil
}
