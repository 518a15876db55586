package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

// Store keeps tenants, roles, users and employees in memory. It enforces the
// same unique constraints as the Postgres schema, checked when a unit of work
// commits.
type Store struct {
	mu        sync.RWMutex
	tenants   map[string]*tenant.Tenant
	roles     map[string]provision.Role
	users     map[string]provision.User
	userRoles map[string][]string
	employees map[string]provision.Employee
	now       func() time.Time
}

var (
	_ tenant.Store           = (*Store)(nil)
	_ provision.UnitOfWork   = (*Store)(nil)
	_ access.RoleStore       = (*Store)(nil)
	_ access.CredentialStore = (*Store)(nil)
)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		tenants:   map[string]*tenant.Tenant{},
		roles:     map[string]provision.Role{},
		users:     map[string]provision.User{},
		userRoles: map[string][]string{},
		employees: map[string]provision.Employee{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tenants[id]; ok && t.Visible() {
		return t.Clone(), nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *Store) FindBySubdomain(_ context.Context, subdomain string) (*tenant.Tenant, error) {
	return s.findVisible(func(t *tenant.Tenant) bool { return t.Subdomain == subdomain })
}

func (s *Store) FindByDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	if domain == "" {
		return nil, tenant.ErrTenantNotFound
	}
	return s.findVisible(func(t *tenant.Tenant) bool { return t.Domain == domain })
}

func (s *Store) findVisible(match func(*tenant.Tenant) bool) (*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if t.Visible() && match(t) {
			return t.Clone(), nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *Store) SubdomainExists(_ context.Context, subdomain string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subdomainTaken(subdomain), nil
}

func (s *Store) List(_ context.Context, params tenant.ListParams) ([]*tenant.Tenant, int, error) {
	params = params.Normalized()
	search := strings.ToLower(params.Search)

	s.mu.RLock()
	var matched []*tenant.Tenant
	for _, t := range s.tenants {
		if t.Deleted || (params.ActiveOnly && !t.Active) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(t.Subdomain, search) {
			continue
		}
		matched = append(matched, t.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *tenant.Tenant) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return matched[start:end], total, nil
}

func (s *Store) ActiveIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.tenants))
	for id, t := range s.tenants {
		if t.Visible() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) UpdateSettings(_ context.Context, id string, settings tenant.Settings) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tenants[id]
	if !ok || !current.Visible() {
		return nil, tenant.ErrTenantNotFound
	}
	if settings.Domain != nil && *settings.Domain != "" {
		for otherID, other := range s.tenants {
			if otherID != id && other.Domain == *settings.Domain {
				return nil, tenant.ErrDomainTaken
			}
		}
	}

	updated := current.Clone()
	settings.Apply(updated)
	updated.UpdatedAt = s.now().UTC()
	s.tenants[id] = updated
	return updated.Clone(), nil
}

func (s *Store) SoftDelete(_ context.Context, id string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[id]
	if !ok || t.Deleted {
		return nil, tenant.ErrTenantNotFound
	}
	deleted := t.Clone()
	deleted.Deleted = true
	deleted.UpdatedAt = s.now().UTC()
	s.tenants[id] = deleted
	return deleted.Clone(), nil
}

// HasPlatformRole reports whether an active user holds role without a tenant.
func (s *Store) HasPlatformRole(_ context.Context, userID string, role rbac.RoleName) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || !u.Active {
		return false, nil
	}
	for _, rid := range s.userRoles[userID] {
		if r, ok := s.roles[rid]; ok && r.Platform() && r.Name == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UserTenantID(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || u.TenantID == "" {
		return "", false, nil
	}
	return u.TenantID, true, nil
}

// CredentialsByEmail returns the login record for email with the names of
// every role the user holds. Users of an inactive or soft-deleted tenant are
// not found.
func (s *Store) CredentialsByEmail(_ context.Context, email string) (access.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if u.TenantID != "" && !s.tenants[u.TenantID].Visible() {
			return access.Credentials{}, access.ErrUserNotFound
		}
		c := access.Credentials{
			UserID:       u.ID,
			TenantID:     u.TenantID,
			Email:        u.Email,
			PasswordHash: slices.Clone(u.PasswordHash),
			Active:       u.Active,
		}
		for _, rid := range s.userRoles[u.ID] {
			if r, ok := s.roles[rid]; ok {
				c.Roles = append(c.Roles, string(r.Name))
			}
		}
		slices.Sort(c.Roles)
		return c, nil
	}
	return access.Credentials{}, access.ErrUserNotFound
}

// Roles returns the roles of a tenant, or the platform roles for an empty id.
func (s *Store) Roles(_ context.Context, tenantID string) ([]provision.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []provision.Role
	for _, r := range s.roles {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b provision.Role) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// Counts reports how many rows of each kind exist. Tests use it to assert
// that failed provisioning leaves nothing behind.
func (s *Store) Counts() (tenants, roles, users, employees int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants), len(s.roles), len(s.users), len(s.employees)
}

// subdomainTaken must be called with mu held.
func (s *Store) subdomainTaken(subdomain string) bool {
	for _, t := range s.tenants {
		if t.Subdomain == subdomain {
			return true
		}
	}
	return false
}

func (s *Store) emailTaken(email string) bool {
	for _, u := range s.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) roleNameTaken(tenantID string, name rbac.RoleName) bool {
	for _, r := range s.roles {
		if r.TenantID == tenantID && r.Name == name {
			return true
		}
	}
	return false
}

// Employees returns the employees matching every key of f, ordered by name.
func (s *Store) Employees(_ context.Context, f access.Filter) ([]provision.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []provision.Employee{}
	for _, e := range s.employees {
		if matches(e.Columns(), f) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b provision.Employee) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// matches reports whether every filter key equals the row value. Unknown
// columns never match.
func matches(row map[string]any, f access.Filter) bool {
	for k, want := range f {
		got, ok := row[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}
