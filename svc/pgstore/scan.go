package pgstore

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

// ErrUnknownColumn is returned for filter keys that are not columns of the
// queried table.
var ErrUnknownColumn = errors.New("pgstore: unknown filter column")

var employeeColumns = []string{"id", "tenant_id", "user_id", "name", "email", "position", "is_deleted"}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var (
		t      tenant.Tenant
		domain *string
		types  []string
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Subdomain, &domain, &t.LogoURL, &types, &t.Currency, &t.Language,
		&t.Timezone, &t.Features, &t.Theme, &t.Terminology, &t.Active, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if domain != nil {
		t.Domain = *domain
	}
	t.BusinessTypes = make([]tenant.BusinessType, len(types))
	for i, bt := range types {
		t.BusinessTypes[i] = tenant.BusinessType(bt)
	}
	return &t, nil
}

// whereClause renders f as an AND of equalities with positional arguments.
// Keys are sorted so the SQL text is stable, and every key must be one of
// allowed. An empty filter is refused because tenant-scoped reads always
// carry a tenant id.
func whereClause(f access.Filter, allowed []string) (string, []any, error) {
	if f.TenantID() == "" {
		return "", nil, fmt.Errorf("%w: tenant_id is required", ErrUnknownColumn)
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		if !slices.Contains(allowed, k) {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, k)
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{k}.Sanitize(), i+1)
		args[i] = f[k]
	}
	return strings.Join(parts, " AND "), args, nil
}

// insertStatement renders an INSERT for data with columns in sorted order.
func insertStatement(table string, data access.Data) (string, []any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = pgx.Identifier{k}.Sanitize()
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = data[k]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return sql, args
}

// escapeLike escapes the LIKE metacharacters of s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
