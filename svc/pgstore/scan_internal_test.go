package pgstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

func TestWhereClause(t *testing.T) {
	t.Parallel()

	t.Run("tenant filter", func(t *testing.T) {
		t.Parallel()
		where, args, err := whereClause(access.TenantFilter("acme", map[string]any{"position": "Owner"}), employeeColumns)
		require.NoError(t, err)
		assert.Equal(t, `"is_deleted" = $1 AND "position" = $2 AND "tenant_id" = $3`, where)
		assert.Equal(t, []any{false, "Owner", "acme"}, args)
	})

	t.Run("unknown column", func(t *testing.T) {
		t.Parallel()
		_, _, err := whereClause(access.TenantFilter("acme", map[string]any{"1=1; --": true}), employeeColumns)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("missing tenant", func(t *testing.T) {
		t.Parallel()
		_, _, err := whereClause(access.Filter{"name": "x"}, employeeColumns)
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestInsertStatement(t *testing.T) {
	t.Parallel()

	sql, args := insertStatement("employees", access.TenantData("acme", map[string]any{"name": "Siti", "id": "e1"}))
	assert.Equal(t, `INSERT INTO "employees" ("id", "name", "tenant_id") VALUES ($1, $2, $3)`, sql)
	assert.Equal(t, []any{"e1", "Siti", "acme"}, args)
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	unique := func(constraint string) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
	}

	assert.NoError(t, mapUniqueViolation(nil))
	assert.ErrorIs(t, mapUniqueViolation(unique("tenants_subdomain_key")), tenant.ErrSubdomainTaken)
	assert.ErrorIs(t, mapUniqueViolation(unique("tenants_domain_key")), tenant.ErrDomainTaken)
	assert.ErrorIs(t, mapUniqueViolation(unique("users_email_key")), provision.ErrEmailTaken)

	other := unique("roles_tenant_name_key")
	assert.Same(t, other, mapUniqueViolation(other))

	plain := errors.New("boom")
	assert.Same(t, plain, mapUniqueViolation(plain))
}

func TestNullString(t *testing.T) {
	t.Parallel()
	assert.Nil(t, nullString(""))
	require.NotNil(t, nullString("x"))
	assert.Equal(t, "x", *nullString("x"))
}
