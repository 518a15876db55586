package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/pg"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/provision"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	pg.TxBeginner
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

var _ DB = (*pgxpool.Pool)(nil)

// Store is the Postgres implementation of the tenancy ports.
type Store struct {
	db  DB
	log *slog.Logger
}

var (
	_ tenant.Store           = (*Store)(nil)
	_ provision.UnitOfWork   = (*Store)(nil)
	_ access.RoleStore       = (*Store)(nil)
	_ access.CredentialStore = (*Store)(nil)
)

func New(db DB, log *slog.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{db: db, log: log}
}

func (s *Store) Ping(ctx context.Context) error {
	return pg.Healthcheck(s.db)(ctx)
}

const tenantColumns = `id, name, subdomain, domain, logo_url, business_types, currency, language,
	timezone, features, theme, terminology, is_active, is_deleted, created_at, updated_at`

const visible = `is_active AND NOT is_deleted`

func (s *Store) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1 AND `+visible, id)
}

func (s *Store) FindBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1 AND `+visible, subdomain)
}

func (s *Store) FindByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	if domain == "" {
		return nil, tenant.ErrTenantNotFound
	}
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE domain = $1 AND `+visible, domain)
}

func (s *Store) findOne(ctx context.Context, query string, args ...any) (*tenant.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return t, nil
}

func (s *Store) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tenants WHERE subdomain = $1)`, subdomain).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subdomain: %w", err)
	}
	return exists, nil
}

func (s *Store) List(ctx context.Context, params tenant.ListParams) ([]*tenant.Tenant, int, error) {
	params = params.Normalized()

	where := `NOT is_deleted`
	args := []any{}
	if params.ActiveOnly {
		where += ` AND is_active`
	}
	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR subdomain ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tenants WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`SELECT %s FROM tenants WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		tenantColumns, where, len(args)-1, len(args))
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*tenant.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, total, nil
}

func (s *Store) ActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM tenants WHERE `+visible+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	return ids, nil
}

// UpdateSettings locks the row, applies settings in Go and writes every
// editable column back.
func (s *Store) UpdateSettings(ctx context.Context, id string, settings tenant.Settings) (*tenant.Tenant, error) {
	var updated *tenant.Tenant
	err := pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		current, err := scanTenant(tx.QueryRow(ctx,
			`SELECT `+tenantColumns+` FROM tenants WHERE id = $1 AND `+visible+` FOR UPDATE`, id))
		if err != nil {
			if pg.IsNotFoundError(err) {
				return tenant.ErrTenantNotFound
			}
			return fmt.Errorf("lock tenant: %w", err)
		}

		settings.Apply(current)
		updated, err = scanTenant(tx.QueryRow(ctx, `
			UPDATE tenants SET
				name = $2, domain = $3, logo_url = $4, currency = $5, language = $6,
				timezone = $7, features = $8, theme = $9, terminology = $10, updated_at = now()
			WHERE id = $1
			RETURNING `+tenantColumns,
			id, current.Name, nullString(current.Domain), current.LogoURL, current.Currency,
			current.Language, current.Timezone, current.Features, current.Theme, current.Terminology,
		))
		return mapUniqueViolation(err)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) SoftDelete(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx,
		`UPDATE tenants SET is_deleted = TRUE, updated_at = now() WHERE id = $1 AND NOT is_deleted RETURNING `+tenantColumns, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("soft delete tenant: %w", err)
	}
	return t, nil
}

// HasPlatformRole reports whether an active user holds role with a NULL tenant.
func (s *Store) HasPlatformRole(ctx context.Context, userID string, role rbac.RoleName) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			JOIN users u ON u.id = ur.user_id
			WHERE ur.user_id = $1
			  AND r.name = $2
			  AND r.tenant_id IS NULL
			  AND u.is_active AND NOT u.is_deleted
		)`, userID, string(role)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check platform role: %w", err)
	}
	return ok, nil
}

func (s *Store) UserTenantID(ctx context.Context, userID string) (string, bool, error) {
	var tenantID *string
	err := s.db.QueryRow(ctx, `SELECT tenant_id FROM users WHERE id = $1 AND NOT is_deleted`, userID).Scan(&tenantID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("lookup user tenant: %w", err)
	}
	if tenantID == nil || *tenantID == "" {
		return "", false, nil
	}
	return *tenantID, true, nil
}

// CredentialsByEmail hides users whose tenant is inactive or soft-deleted.
func (s *Store) CredentialsByEmail(ctx context.Context, email string) (access.Credentials, error) {
	var (
		c        access.Credentials
		tenantID *string
	)
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.tenant_id, u.email, u.password_hash, u.is_active,
		       COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN tenants t ON t.id = u.tenant_id
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		WHERE u.email = $1 AND NOT u.is_deleted
		  AND (u.tenant_id IS NULL OR (t.is_active AND NOT t.is_deleted))
		GROUP BY u.id`, email).Scan(&c.UserID, &tenantID, &c.Email, &c.PasswordHash, &c.Active, &c.Roles)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return access.Credentials{}, access.ErrUserNotFound
		}
		return access.Credentials{}, fmt.Errorf("lookup credentials: %w", err)
	}
	if tenantID != nil {
		c.TenantID = *tenantID
	}
	return c, nil
}

// Employees returns the employees matching f, ordered by name.
func (s *Store) Employees(ctx context.Context, f access.Filter) ([]provision.Employee, error) {
	where, args, err := whereClause(f, employeeColumns)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, tenant_id, COALESCE(user_id, ''), name, email, position, is_deleted, created_at
		FROM employees WHERE `+where+` ORDER BY name, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (provision.Employee, error) {
		var e provision.Employee
		err := row.Scan(&e.ID, &e.TenantID, &e.UserID, &e.Name, &e.Email, &e.Position, &e.Deleted, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// mapUniqueViolation turns unique index violations into domain errors.
func mapUniqueViolation(err error) error {
	if err == nil || !pg.IsDuplicateKeyError(err) {
		return err
	}
	switch pg.ConstraintName(err) {
	case "tenants_subdomain_key":
		return errors.Join(tenant.ErrSubdomainTaken, err)
	case "tenants_domain_key":
		return errors.Join(tenant.ErrDomainTaken, err)
	case "users_email_key":
		return errors.Join(provision.ErrEmailTaken, err)
	default:
		return err
	}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
