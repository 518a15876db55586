package access_test

import (
	"context"
	"errors"

	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

var errStoreDown = errors.New("store down")

type fakeRoles struct {
	platform map[string]bool
	tenants  map[string]string
	err      error
}

func (f *fakeRoles) HasPlatformRole(_ context.Context, userID string, role rbac.RoleName) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return role == rbac.SuperAdmin && f.platform[userID], nil
}

func (f *fakeRoles) UserTenantID(_ context.Context, userID string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	id, ok := f.tenants[userID]
	return id, ok, nil
}

// fakeTenants treats every tenant as visible unless it is listed in gone.
type fakeTenants struct {
	ids  []string
	gone map[string]bool
	err  error
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*tenant.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.gone[id] {
		return nil, tenant.ErrTenantNotFound
	}
	return &tenant.Tenant{ID: id, Active: true}, nil
}

func (f *fakeTenants) ActiveIDs(context.Context) ([]string, error) {
	return f.ids, f.err
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{
		platform: map[string]bool{"root": true},
		tenants: map[string]string{
			"alice": "acme",
			"root":  "default",
		},
	}
}
