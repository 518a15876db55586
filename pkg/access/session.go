package access

import (
	"strings"

	"github.com/travelsuite/tenancy/pkg/tenant"
)

// Session is the authenticated identity a request carries. Its claims are
// untrusted until passed through a Builder.
type Session struct {
	UserID   string   `json:"user_id"`
	TenantID string   `json:"tenant_id,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.UserID) != ""
}

// SessionTenantID is the only place the single/multi fallback rule lives.
// In single-tenant mode the session claim is ignored and the default tenant
// is always returned. In multi-tenant mode the claim wins when present.
func SessionTenantID(cfg tenant.Config, s Session) string {
	if cfg.IsSingleTenant() {
		return cfg.DefaultTenantID
	}
	if id := strings.TrimSpace(s.TenantID); id != "" {
		return id
	}
	return cfg.DefaultTenantID
}
