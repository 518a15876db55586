package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

var (
	ErrDuplicateID   = errors.New("memstore: duplicate id")
	ErrRoleNameTaken = errors.New("memstore: role name already exists for tenant")
	ErrMissingRow    = errors.New("memstore: referenced row does not exist")
)

type roleLink struct {
	userID string
	roleID string
}

// tx stages writes until commit. Reads see committed rows plus the staged ones.
type tx struct {
	s         *Store
	tenants   []*tenant.Tenant
	roles     []provision.Role
	users     []provision.User
	links     []roleLink
	employees []provision.Employee
}

// WithinTx runs fn against a staging transaction and commits its writes
// atomically when fn succeeds. Unique constraints are checked again at
// commit, so of two racing transactions claiming the same subdomain only the
// first to commit wins.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx provision.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{s: s}
	if err := fn(ctx, t); err != nil {
		return err
	}
	return t.commit(ctx)
}

func (t *tx) TenantExists(_ context.Context, id string) (bool, error) {
	if slices.ContainsFunc(t.tenants, func(x *tenant.Tenant) bool { return x.ID == id }) {
		return true, nil
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.s.tenants[id]
	return ok, nil
}

func (t *tx) InsertTenant(_ context.Context, v *tenant.Tenant) error {
	if slices.ContainsFunc(t.tenants, func(x *tenant.Tenant) bool { return x.Subdomain == v.Subdomain }) {
		return tenant.ErrSubdomainTaken
	}
	t.s.mu.RLock()
	taken := t.s.subdomainTaken(v.Subdomain)
	t.s.mu.RUnlock()
	if taken {
		return tenant.ErrSubdomainTaken
	}
	t.tenants = append(t.tenants, v.Clone())
	return nil
}

func (t *tx) InsertRoles(_ context.Context, roles []provision.Role) error {
	for _, r := range roles {
		if slices.ContainsFunc(t.roles, func(x provision.Role) bool {
			return x.TenantID == r.TenantID && x.Name == r.Name
		}) {
			return fmt.Errorf("%w: %s", ErrRoleNameTaken, r.Name)
		}
		if r.TenantID != "" && !t.tenantKnown(r.TenantID) {
			return fmt.Errorf("%w: tenant %s", ErrMissingRow, r.TenantID)
		}
		r.Permissions = slices.Clone(r.Permissions)
		t.roles = append(t.roles, r)
	}
	return nil
}

func (t *tx) InsertUser(_ context.Context, u provision.User) error {
	if slices.ContainsFunc(t.users, func(x provision.User) bool { return x.Email == u.Email }) {
		return provision.ErrEmailTaken
	}
	t.s.mu.RLock()
	taken := t.s.emailTaken(u.Email)
	t.s.mu.RUnlock()
	if taken {
		return provision.ErrEmailTaken
	}
	u.PasswordHash = slices.Clone(u.PasswordHash)
	t.users = append(t.users, u)
	return nil
}

func (t *tx) AssignRole(_ context.Context, userID, roleID string) error {
	if !t.userKnown(userID) || !t.roleKnown(roleID) {
		return fmt.Errorf("%w: user %s role %s", ErrMissingRow, userID, roleID)
	}
	t.links = append(t.links, roleLink{userID: userID, roleID: roleID})
	return nil
}

func (t *tx) InsertEmployee(_ context.Context, e provision.Employee) error {
	if !t.tenantKnown(e.TenantID) || !t.userKnown(e.UserID) {
		return fmt.Errorf("%w: employee %s", ErrMissingRow, e.ID)
	}
	t.employees = append(t.employees, e)
	return nil
}

func (t *tx) PlatformRoleID(_ context.Context, name rbac.RoleName) (string, bool, error) {
	for _, r := range t.roles {
		if r.Platform() && r.Name == name {
			return r.ID, true, nil
		}
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, r := range t.s.roles {
		if r.Platform() && r.Name == name {
			return r.ID, true, nil
		}
	}
	return "", false, nil
}

func (t *tx) UserIDByEmail(_ context.Context, email string) (string, bool, error) {
	for _, u := range t.users {
		if u.Email == email {
			return u.ID, true, nil
		}
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, u := range t.s.users {
		if u.Email == email {
			return u.ID, true, nil
		}
	}
	return "", false, nil
}

func (t *tx) tenantKnown(id string) bool {
	ok, _ := t.TenantExists(context.Background(), id)
	return ok
}

func (t *tx) userKnown(id string) bool {
	if slices.ContainsFunc(t.users, func(x provision.User) bool { return x.ID == id }) {
		return true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.s.users[id]
	return ok
}

func (t *tx) roleKnown(id string) bool {
	if slices.ContainsFunc(t.roles, func(x provision.Role) bool { return x.ID == id }) {
		return true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	_, ok := t.s.roles[id]
	return ok
}

// commit re-validates every constraint against the committed state under the
// write lock and applies all staged rows or none.
func (t *tx) commit(ctx context.Context) error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, v := range t.tenants {
		if _, dup := s.tenants[v.ID]; dup {
			return fmt.Errorf("%w: tenant %s", ErrDuplicateID, v.ID)
		}
		if s.subdomainTaken(v.Subdomain) {
			return tenant.ErrSubdomainTaken
		}
		if v.Domain != "" {
			for _, other := range s.tenants {
				if other.Domain == v.Domain {
					return tenant.ErrDomainTaken
				}
			}
		}
	}
	for _, r := range t.roles {
		if _, dup := s.roles[r.ID]; dup {
			return fmt.Errorf("%w: role %s", ErrDuplicateID, r.ID)
		}
		if s.roleNameTaken(r.TenantID, r.Name) {
			return fmt.Errorf("%w: %s", ErrRoleNameTaken, r.Name)
		}
	}
	for _, u := range t.users {
		if _, dup := s.users[u.ID]; dup {
			return fmt.Errorf("%w: user %s", ErrDuplicateID, u.ID)
		}
		if s.emailTaken(u.Email) {
			return provision.ErrEmailTaken
		}
	}
	for _, e := range t.employees {
		if _, dup := s.employees[e.ID]; dup {
			return fmt.Errorf("%w: employee %s", ErrDuplicateID, e.ID)
		}
	}

	for _, v := range t.tenants {
		s.tenants[v.ID] = v
	}
	for _, r := range t.roles {
		s.roles[r.ID] = r
	}
	for _, u := range t.users {
		s.users[u.ID] = u
	}
	for _, l := range t.links {
		if !slices.Contains(s.userRoles[l.userID], l.roleID) {
			s.userRoles[l.userID] = append(s.userRoles[l.userID], l.roleID)
		}
	}
	for _, e := range t.employees {
		s.employees[e.ID] = e
	}
	return nil
}
