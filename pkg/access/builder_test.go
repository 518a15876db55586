package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

var (
	singleCfg = tenant.Config{Mode: tenant.ModeSingle, DefaultTenantID: "default", BaseDomain: "travel.test"}
	multiCfg  = tenant.Config{Mode: tenant.ModeMulti, DefaultTenantID: "default", BaseDomain: "travel.test"}
)

func TestSessionTenantID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     tenant.Config
		session access.Session
		want    string
	}{
		{"single ignores claim", singleCfg, access.Session{UserID: "u", TenantID: "acme"}, "default"},
		{"single without claim", singleCfg, access.Session{UserID: "u"}, "default"},
		{"multi uses claim", multiCfg, access.Session{UserID: "u", TenantID: "acme"}, "acme"},
		{"multi falls back", multiCfg, access.Session{UserID: "u", TenantID: "  "}, "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, access.SessionTenantID(tt.cfg, tt.session))
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{})
		_, err := b.Build(access.Session{TenantID: "acme", Roles: []string{"SUPER_ADMIN"}})
		assert.ErrorIs(t, err, access.ErrUnauthenticated)
	})

	t.Run("single tenant overrides forged claim", func(t *testing.T) {
		t.Parallel()
		b := access.NewBuilder(singleCfg, newFakeRoles(), &fakeTenants{})
		ac, err := b.Build(access.Session{UserID: "alice", TenantID: "evil"})
		require.NoError(t, err)
		assert.Equal(t, "default", ac.TenantID())
		assert.Equal(t, "alice", ac.UserID())
	})

	t.Run("roles are normalized and copied", func(t *testing.T) {
		t.Parallel()
		b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{})
		roles := []string{"finance", "super_admin", "unknown"}
		ac, err := b.Build(access.Session{UserID: "alice", TenantID: "acme", Roles: roles})
		require.NoError(t, err)

		roles[0] = "CUSTOMER"
		assert.Equal(t, []string{"SUPER_ADMIN", "FINANCE"}, ac.Roles())
		assert.True(t, ac.IsSuperAdmin())
		assert.True(t, ac.HasRole(rbac.Finance))
		assert.False(t, ac.HasRole(rbac.Customer))

		got := ac.Roles()
		got[0] = "CUSTOMER"
		assert.True(t, ac.IsSuperAdmin())
	})

	t.Run("permission checks", func(t *testing.T) {
		t.Parallel()
		b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{})
		ac, err := b.Build(access.Session{UserID: "alice", Roles: []string{"FINANCE"}})
		require.NoError(t, err)

		auth := rbac.NewAuthorizer(nil)
		assert.True(t, ac.Can(auth, "finance.approve"))
		assert.False(t, ac.Can(auth, "hr.write"))
	})
}

func TestBuilderIsPlatformAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{})

	ok, err := b.IsPlatformAdmin(ctx, "root")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.IsPlatformAdmin(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.IsPlatformAdmin(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	failing := access.NewBuilder(multiCfg, &fakeRoles{err: errStoreDown}, &fakeTenants{})
	_, err = failing.IsPlatformAdmin(ctx, "root")
	assert.ErrorIs(t, err, errStoreDown)
}

func TestBuilderAccessibleTenants(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{ids: []string{"acme", "default", "globex"}})

	t.Run("platform admin sees every active tenant", func(t *testing.T) {
		t.Parallel()
		ids, err := b.AccessibleTenants(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, []string{"acme", "default", "globex"}, ids)
	})

	t.Run("tenant user sees own tenant", func(t *testing.T) {
		t.Parallel()
		ids, err := b.AccessibleTenants(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"acme"}, ids)
	})

	t.Run("user without tenant sees nothing", func(t *testing.T) {
		t.Parallel()
		ids, err := b.AccessibleTenants(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("deleted own tenant is not accessible", func(t *testing.T) {
		t.Parallel()
		gone := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{gone: map[string]bool{"acme": true}})
		ids, err := gone.AccessibleTenants(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("tenant listing failure", func(t *testing.T) {
		t.Parallel()
		broken := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{err: errStoreDown})
		_, err := broken.AccessibleTenants(ctx, "root")
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestBuilderCheckTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{gone: map[string]bool{"acme": true}})

	alice, err := b.Build(access.Session{UserID: "alice", TenantID: "acme"})
	require.NoError(t, err)
	assert.ErrorIs(t, b.CheckTenant(ctx, alice), tenant.ErrTenantNotFound)

	root, err := b.Build(access.Session{UserID: "root"})
	require.NoError(t, err)
	assert.NoError(t, b.CheckTenant(ctx, root))

	broken := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{err: errStoreDown})
	err = broken.CheckTenant(ctx, root)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestBuilderAuthorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := access.NewBuilder(multiCfg, newFakeRoles(), &fakeTenants{})

	alice, err := b.Build(access.Session{UserID: "alice", TenantID: "acme", Roles: []string{"SUPER_ADMIN"}})
	require.NoError(t, err)
	root, err := b.Build(access.Session{UserID: "root", TenantID: "default"})
	require.NoError(t, err)

	require.NoError(t, b.Authorize(ctx, alice, "acme"))
	assert.ErrorIs(t, b.Authorize(ctx, alice, "globex"), access.ErrForbidden,
		"a tenant-local SUPER_ADMIN must not reach other tenants")
	assert.NoError(t, b.Authorize(ctx, root, "globex"))
	assert.ErrorIs(t, b.Authorize(ctx, access.Context{}, "acme"), access.ErrUnauthenticated)

	assert.ErrorIs(t, b.RequirePlatformAdmin(ctx, alice), access.ErrForbidden)
	assert.NoError(t, b.RequirePlatformAdmin(ctx, root))

	assert.True(t, access.IsAuthError(access.ErrForbidden))
	assert.False(t, access.IsAuthError(errStoreDown))
}
