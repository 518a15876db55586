package provision

import (
	"time"

	"github.com/travelsuite/tenancy/pkg/rbac"
)

// Role is a stored role. An empty TenantID marks a platform-level role.
type Role struct {
	ID          string
	TenantID    string
	Name        rbac.RoleName
	DisplayName rbac.DisplayName
	Permissions []string
	CreatedAt   time.Time
}

func (r Role) Platform() bool { return r.TenantID == "" }

// User is a login identity. Platform users have no TenantID.
type User struct {
	ID           string
	TenantID     string
	Name         string
	Email        string
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
}

// Employee is the staff record linked to a tenant user.
type Employee struct {
	ID        string
	TenantID  string
	UserID    string
	Name      string
	Email     string
	Position  string
	Deleted   bool
	CreatedAt time.Time
}

// Columns maps the employee onto its column names, for matching against
// tenant-scoped filters.
func (e Employee) Columns() map[string]any {
	return map[string]any{
		"id":         e.ID,
		"tenant_id":  e.TenantID,
		"user_id":    e.UserID,
		"name":       e.Name,
		"email":      e.Email,
		"position":   e.Position,
		"is_deleted": e.Deleted,
	}
}
