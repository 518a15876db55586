package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/pg"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

// WithinTx runs fn in a database transaction. Unique violations raised by the
// schema surface as tenant.ErrSubdomainTaken or provision.ErrEmailTaken.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx provision.Tx) error) error {
	err := pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(ctx, &txStore{tx: tx})
	})
	return mapUniqueViolation(err)
}

type txStore struct {
	tx pgx.Tx
}

func (t *txStore) TenantExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (t *txStore) InsertTenant(ctx context.Context, v *tenant.Tenant) error {
	types := make([]string, len(v.BusinessTypes))
	for i, bt := range v.BusinessTypes {
		types[i] = string(bt)
	}
	_, err := t.tx.Exec(ctx, `
		INSERT INTO tenants (id, name, subdomain, domain, logo_url, business_types, currency, language,
			timezone, features, theme, terminology, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, FALSE, $14, $15)`,
		v.ID, v.Name, v.Subdomain, nullString(v.Domain), v.LogoURL, types, v.Currency, v.Language,
		v.Timezone, v.Features, v.Theme, v.Terminology, v.Active, v.CreatedAt, v.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (t *txStore) InsertRoles(ctx context.Context, roles []provision.Role) error {
	rows := make([][]any, len(roles))
	for i, r := range roles {
		rows[i] = []any{r.ID, nullString(r.TenantID), string(r.Name), r.DisplayName, r.Permissions, r.CreatedAt}
	}
	_, err := t.tx.CopyFrom(ctx,
		pgx.Identifier{"roles"},
		[]string{"id", "tenant_id", "name", "display_name", "permissions", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy roles: %w", mapUniqueViolation(err))
	}
	return nil
}

func (t *txStore) InsertUser(ctx context.Context, u provision.User) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO users (id, tenant_id, name, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, nullString(u.TenantID), u.Name, u.Email, u.PasswordHash, u.Active, u.CreatedAt,
	)
	return mapUniqueViolation(err)
}

func (t *txStore) AssignRole(ctx context.Context, userID, roleID string) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, roleID)
	return err
}

// InsertEmployee goes through access.TenantData like every tenant-scoped insert.
func (t *txStore) InsertEmployee(ctx context.Context, e provision.Employee) error {
	sql, args := insertStatement("employees", access.TenantData(e.TenantID, map[string]any{
		"id":         e.ID,
		"user_id":    nullString(e.UserID),
		"name":       e.Name,
		"email":      e.Email,
		"position":   e.Position,
		"created_at": e.CreatedAt,
	}))
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *txStore) PlatformRoleID(ctx context.Context, name rbac.RoleName) (string, bool, error) {
	var id string
	err := t.tx.QueryRow(ctx, `SELECT id FROM roles WHERE tenant_id IS NULL AND name = $1`, string(name)).Scan(&id)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

func (t *txStore) UserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := t.tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}
