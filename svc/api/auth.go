package api

import (
	"net/http"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/binder"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
	Session   access.Session `json:"session"`
}

type meResponse struct {
	UserID            string   `json:"user_id"`
	TenantID          string   `json:"tenant_id"`
	Roles             []string `json:"roles"`
	IsSuperAdmin      bool     `json:"is_super_admin"`
	IsPlatformAdmin   bool     `json:"is_platform_admin"`
	AccessibleTenants []string `json:"accessible_tenants"`
	Permissions       []string `json:"permissions"`
}

// login exchanges email and password for a bearer token. On a tenant's own
// site only that tenant's users and platform users may sign in.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := binder.JSON(r, &req); err != nil {
		s.errs.render(w, r, err)
		return
	}

	sess, err := s.svc.Login.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	if !s.signInAllowed(r, sess) {
		s.errs.render(w, r, access.ErrInvalidCredentials)
		return
	}

	token, err := s.svc.Sessions.Issue(sess)
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	respond(w, http.StatusOK, loginResponse{Token: token, TokenType: "Bearer", Session: sess})
}

func (s *Server) signInAllowed(r *http.Request, sess access.Session) bool {
	if s.cfg.IsSingleTenant() || sess.TenantID == "" {
		return true
	}
	site, ok := tenant.FromContext(r.Context())
	if !ok || site.ID == s.cfg.DefaultTenantID {
		return true
	}
	return site.ID == sess.TenantID
}

// me echoes the access context of the caller.
func (s *Server) me(w http.ResponseWriter, r *http.Request, ac access.Context) {
	ctx := r.Context()
	admin, err := s.svc.Builder.IsPlatformAdmin(ctx, ac.UserID())
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	tenants, err := s.svc.Builder.AccessibleTenants(ctx, ac.UserID())
	if err != nil {
		s.errs.render(w, r, err)
		return
	}

	respond(w, http.StatusOK, meResponse{
		UserID:            ac.UserID(),
		TenantID:          ac.TenantID(),
		Roles:             ac.Roles(),
		IsSuperAdmin:      ac.IsSuperAdmin(),
		IsPlatformAdmin:   admin,
		AccessibleTenants: tenants,
		Permissions:       s.svc.Authorizer.Catalog().PermissionsFor(ac.RoleSet()),
	})
}
