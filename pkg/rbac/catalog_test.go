package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsuite/tenancy/pkg/rbac"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := rbac.DefaultCatalog()
	require.NotNil(t, c)

	roles := c.Roles()
	require.Len(t, roles, 11)
	for i, name := range rbac.RoleNames() {
		assert.Equal(t, name, roles[i].Name)
		assert.NotEmpty(t, roles[i].DisplayName.ID, name)
		assert.NotEmpty(t, roles[i].DisplayName.EN, name)
	}

	assert.Equal(t, []string{"*"}, c.Permissions(rbac.SuperAdmin))
	assert.Contains(t, c.Permissions(rbac.Sales), "bookings.write", "inherited from AGENT")
	assert.Contains(t, c.Permissions(rbac.Admin), "finance.*", "inherited from FINANCE")
	assert.NotContains(t, c.Permissions(rbac.Customer), "bookings.write")

	def, ok := c.Role(rbac.Finance)
	require.True(t, ok)
	assert.Equal(t, "Keuangan", def.DisplayName.Localized("id"))
	assert.Equal(t, "Finance", def.DisplayName.Localized("en"))
	assert.Equal(t, "Keuangan", def.DisplayName.Localized("fr"))
}

const validRoles = `
  - name: ADMIN
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: FINANCE
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: OPERASIONAL
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: MARKETING
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: HRD
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: INVENTORY
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: TOUR_LEADER
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: SALES
    display_name: {id: a, en: a}
    permissions: [users.read]
  - name: CUSTOMER
    display_name: {id: a, en: a}
    permissions: [users.read]
`

func catalogYAML(superAdmin, agent string) []byte {
	return []byte("permissions: [users.read, users.write]\nroles:\n" + superAdmin + agent + validRoles)
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	superAdmin := "  - name: SUPER_ADMIN\n    permissions: ['*']\n"
	agent := "  - name: AGENT\n    permissions: [users.write]\n"

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c, err := rbac.ParseCatalog(catalogYAML(superAdmin, agent))
		require.NoError(t, err)
		assert.Equal(t, []string{"users.read", "users.write"}, c.KnownPermissions())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.ParseCatalog([]byte("roles: ["))
		assert.ErrorIs(t, err, rbac.ErrInvalidCatalog)
	})

	t.Run("missing role", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.ParseCatalog(catalogYAML(superAdmin, ""))
		assert.ErrorIs(t, err, rbac.ErrInvalidCatalog)
	})

	t.Run("unknown role name", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.ParseCatalog(catalogYAML(superAdmin, agent+"  - name: OWNER\n"))
		assert.ErrorIs(t, err, rbac.ErrInvalidRole)
	})

	t.Run("undeclared permission", func(t *testing.T) {
		t.Parallel()
		bad := "  - name: AGENT\n    permissions: [bookings.read]\n"
		_, err := rbac.ParseCatalog(catalogYAML(superAdmin, bad))
		assert.ErrorIs(t, err, rbac.ErrInvalidCatalog)
	})

	t.Run("unknown parent", func(t *testing.T) {
		t.Parallel()
		bad := "  - name: AGENT\n    inherits: [GHOST]\n"
		_, err := rbac.ParseCatalog(catalogYAML(superAdmin, bad))
		assert.ErrorIs(t, err, rbac.ErrInvalidRole)
	})

	t.Run("circular inheritance", func(t *testing.T) {
		t.Parallel()
		sa := "  - name: SUPER_ADMIN\n    inherits: [AGENT]\n"
		ag := "  - name: AGENT\n    inherits: [SUPER_ADMIN]\n"
		_, err := rbac.ParseCatalog(catalogYAML(sa, ag))
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("self inheritance", func(t *testing.T) {
		t.Parallel()
		ag := "  - name: AGENT\n    inherits: [AGENT]\n"
		_, err := rbac.ParseCatalog(catalogYAML(superAdmin, ag))
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})
}

func TestAuthorizer(t *testing.T) {
	t.Parallel()

	auth := rbac.NewAuthorizer(nil)
	require.Same(t, rbac.DefaultCatalog(), auth.Catalog())

	superAdmin := rbac.NewRoleSet("SUPER_ADMIN")
	finance := rbac.NewRoleSet("FINANCE")
	customer := rbac.NewRoleSet("CUSTOMER")

	assert.True(t, auth.Can(superAdmin, "anything.at.all"))
	assert.True(t, auth.Can(finance, "finance.approve"))
	assert.False(t, auth.Can(finance, "hr.write"))
	assert.False(t, auth.Can(rbac.RoleSet{}, "packages.read"))

	assert.True(t, auth.CanAll(finance, "finance.read", "bookings.read"))
	assert.False(t, auth.CanAll(finance, "finance.read", "bookings.write"))
	assert.True(t, auth.CanAny(customer, "finance.read", "packages.read"))
	assert.False(t, auth.CanAny(customer, "finance.read", "hr.read"))

	require.NoError(t, auth.Require(finance, "finance.write"))
	assert.ErrorIs(t, auth.Require(customer, "finance.write"), rbac.ErrInsufficientPermissions)
}
