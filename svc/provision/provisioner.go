package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/rbac"
	"github.com/travelsuite/tenancy/pkg/sanitizer"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/pkg/validator"
)

// AdminPosition is the employee position recorded for a tenant's first admin.
const AdminPosition = "Owner"

// Provisioner creates tenants together with their roles and first admin.
type Provisioner struct {
	uow        UnitOfWork
	subdomains SubdomainChecker
	catalog    *rbac.Catalog
	defaults   Defaults
	bcryptCost int
	newID      func() string
	now        func() time.Time
	log        *slog.Logger
}

type Option func(*Provisioner)

func WithCatalog(c *rbac.Catalog) Option {
	return func(p *Provisioner) {
		if c != nil {
			p.catalog = c
		}
	}
}

func WithDefaults(d Defaults) Option {
	return func(p *Provisioner) { p.defaults = d.clone() }
}

func WithBcryptCost(cost int) Option {
	return func(p *Provisioner) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			p.bcryptCost = cost
		}
	}
}

// WithIDGenerator replaces uuid.NewString for record ids.
func WithIDGenerator(fn func() string) Option {
	return func(p *Provisioner) {
		if fn != nil {
			p.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Provisioner) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Provisioner) {
		if l != nil {
			p.log = l
		}
	}
}

func NewProvisioner(uow UnitOfWork, subdomains SubdomainChecker, opts ...Option) *Provisioner {
	p := &Provisioner{
		uow:        uow,
		subdomains: subdomains,
		catalog:    rbac.DefaultCatalog(),
		defaults:   DefaultSettings(),
		bcryptCost: bcrypt.DefaultCost,
		newID:      uuid.NewString,
		now:        time.Now,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateTenant validates req and writes the tenant, its role set, the admin
// user, the user-role link and the admin employee as one unit of work.
// Validation and availability failures happen before any write. A subdomain
// claimed concurrently surfaces as tenant.ErrSubdomainTaken.
func (p *Provisioner) CreateTenant(ctx context.Context, req Request) (*tenant.Tenant, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}

	available, err := p.subdomains.IsSubdomainAvailable(ctx, req.Subdomain)
	if err != nil {
		return nil, fmt.Errorf("check subdomain availability: %w", err)
	}
	if !available {
		return nil, tenant.ErrSubdomainTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), p.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	now := p.now().UTC()
	t := p.newTenant(p.newID(), req.Name, req.Subdomain, req.BusinessTypes, now)
	roles := p.tenantRoles(t.ID, now)
	admin := User{
		ID:           p.newID(),
		TenantID:     t.ID,
		Name:         req.AdminName,
		Email:        req.AdminEmail,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
	}
	employee := Employee{
		ID:        p.newID(),
		TenantID:  t.ID,
		UserID:    admin.ID,
		Name:      req.AdminName,
		Email:     req.AdminEmail,
		Position:  AdminPosition,
		CreatedAt: now,
	}

	err = p.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.InsertTenant(ctx, t); err != nil {
			return fmt.Errorf("insert tenant: %w", err)
		}
		if err := tx.InsertRoles(ctx, roles); err != nil {
			return fmt.Errorf("insert roles: %w", err)
		}
		if err := tx.InsertUser(ctx, admin); err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		if err := tx.AssignRole(ctx, admin.ID, roleID(roles, rbac.SuperAdmin)); err != nil {
			return fmt.Errorf("assign admin role: %w", err)
		}
		if err := tx.InsertEmployee(ctx, employee); err != nil {
			return fmt.Errorf("insert admin employee: %w", err)
		}
		return ctx.Err()
	})
	if err != nil {
		if errors.Is(err, tenant.ErrSubdomainTaken) || errors.Is(err, ErrEmailTaken) {
			p.log.InfoContext(ctx, "tenant registration conflict",
				logger.Component("provision"), logger.Subdomain(req.Subdomain), logger.Error(err))
		} else {
			p.log.ErrorContext(ctx, "tenant provisioning rolled back",
				logger.Component("provision"), slog.Any("request", req), logger.Error(err))
		}
		return nil, err
	}

	p.log.InfoContext(ctx, "tenant provisioned",
		logger.Component("provision"),
		logger.Event("tenant.created"),
		logger.TenantID(t.ID),
		logger.Subdomain(t.Subdomain),
		logger.UserID(admin.ID),
	)
	return t, nil
}

// EnsureDefaultTenant creates the default tenant of cfg with its role set
// when it does not exist yet. It reports whether anything was written.
func (p *Provisioner) EnsureDefaultTenant(ctx context.Context, cfg tenant.Config, name string) (bool, error) {
	name = sanitizer.Apply(name, sanitizer.SingleLine, sanitizer.Trim)
	if name == "" {
		name = "Travel Agency"
	}

	created := false
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		exists, err := tx.TenantExists(ctx, cfg.DefaultTenantID)
		if err != nil {
			return fmt.Errorf("check default tenant: %w", err)
		}
		if exists {
			return nil
		}

		now := p.now().UTC()
		subdomain := tenant.NormalizeSubdomain(cfg.DefaultTenantID)
		t := p.newTenant(cfg.DefaultTenantID, name, subdomain, tenant.BusinessTypes(), now)
		if err := tx.InsertTenant(ctx, t); err != nil {
			return fmt.Errorf("insert default tenant: %w", err)
		}
		if err := tx.InsertRoles(ctx, p.tenantRoles(t.ID, now)); err != nil {
			return fmt.Errorf("insert default roles: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		p.log.InfoContext(ctx, "default tenant created",
			logger.Component("provision"), logger.TenantID(cfg.DefaultTenantID))
	}
	return created, nil
}

// PlatformAdmin describes the operator account bootstrapped at startup.
type PlatformAdmin struct {
	Name     string
	Email    string
	Password string
}

// EnsurePlatformAdmin makes sure an unscoped SUPER_ADMIN role exists and that
// a user with the given email holds it. An existing user keeps its password.
func (p *Provisioner) EnsurePlatformAdmin(ctx context.Context, in PlatformAdmin) (bool, error) {
	in.Name = sanitizer.Apply(in.Name, sanitizer.SingleLine, sanitizer.Trim)
	in.Email = sanitizer.NormalizeEmail(in.Email)
	if in.Name == "" {
		in.Name = "Platform Admin"
	}
	if err := validator.Apply(
		validator.ValidEmail("email", in.Email),
		validator.MinLen("password", in.Password, MinPasswordLength),
		validator.MaxLen("password", in.Password, MaxPasswordLength),
		validator.PasswordClasses("password", in.Password, MinPasswordClass),
	); err != nil {
		return false, err
	}

	created := false
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		now := p.now().UTC()

		rid, ok, err := tx.PlatformRoleID(ctx, rbac.SuperAdmin)
		if err != nil {
			return fmt.Errorf("lookup platform role: %w", err)
		}
		if !ok {
			role := p.role("", rbac.SuperAdmin, now)
			if err := tx.InsertRoles(ctx, []Role{role}); err != nil {
				return fmt.Errorf("insert platform role: %w", err)
			}
			rid = role.ID
		}

		uid, ok, err := tx.UserIDByEmail(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("lookup platform admin: %w", err)
		}
		if !ok {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.bcryptCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			uid = p.newID()
			if err := tx.InsertUser(ctx, User{
				ID:           uid,
				Name:         in.Name,
				Email:        in.Email,
				PasswordHash: hash,
				Active:       true,
				CreatedAt:    now,
			}); err != nil {
				return fmt.Errorf("insert platform admin: %w", err)
			}
			created = true
		}
		if err := tx.AssignRole(ctx, uid, rid); err != nil {
			return fmt.Errorf("assign platform role: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		p.log.InfoContext(ctx, "platform admin created",
			logger.Component("provision"), slog.String("email", sanitizer.MaskEmail(in.Email)))
	}
	return created, nil
}

func (p *Provisioner) newTenant(id, name, subdomain string, types []tenant.BusinessType, now time.Time) *tenant.Tenant {
	d := p.defaults.clone()
	return &tenant.Tenant{
		ID:            id,
		Name:          name,
		Subdomain:     subdomain,
		BusinessTypes: types,
		Currency:      d.Currency,
		Language:      d.Language,
		Timezone:      d.Timezone,
		Features:      d.Features,
		Theme:         d.Theme,
		Terminology:   map[string]string{},
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Provisioner) tenantRoles(tenantID string, now time.Time) []Role {
	names := rbac.RoleNames()
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, p.role(tenantID, name, now))
	}
	return roles
}

func (p *Provisioner) role(tenantID string, name rbac.RoleName, now time.Time) Role {
	def, _ := p.catalog.Role(name)
	return Role{
		ID:          p.newID(),
		TenantID:    tenantID,
		Name:        name,
		DisplayName: def.DisplayName,
		Permissions: p.catalog.Permissions(name),
		CreatedAt:   now,
	}
}

func roleID(roles []Role, name rbac.RoleName) string {
	for _, r := range roles {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}
