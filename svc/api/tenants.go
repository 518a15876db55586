package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/binder"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

const (
	permSettingsWrite = "tenant.settings.write"
	permUsersRead     = "users.read"
)

type employeeResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type listTenantsQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Search   string `query:"q"`
	Active   bool   `query:"active"`
}

// employees lists the staff of the caller's tenant. The read goes through
// the caller's tenant filter, never through a client-supplied tenant id.
func (s *Server) employees(w http.ResponseWriter, r *http.Request, ac access.Context) {
	if !ac.Can(s.svc.Authorizer, permUsersRead) {
		s.errs.render(w, r, access.ErrForbidden)
		return
	}

	extra := map[string]any{}
	if position := strings.TrimSpace(r.URL.Query().Get("position")); position != "" {
		extra["position"] = position
	}
	list, err := s.svc.Employees.Employees(r.Context(), ac.Filter(extra))
	if err != nil {
		s.errs.render(w, r, err)
		return
	}

	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, employeeResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Name:      e.Name,
			Email:     e.Email,
			Position:  e.Position,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, Envelope{Data: out, Meta: map[string]any{"tenant_id": ac.TenantID()}})
}

func (s *Server) updateOwnSettings(w http.ResponseWriter, r *http.Request, ac access.Context) {
	s.updateSettings(w, r, ac, ac.TenantID())
}

func (s *Server) updateTenantSettings(w http.ResponseWriter, r *http.Request, ac access.Context) {
	s.updateSettings(w, r, ac, chi.URLParam(r, "id"))
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request, ac access.Context, tenantID string) {
	if err := s.canManageSettings(r.Context(), ac, tenantID); err != nil {
		s.errs.render(w, r, err)
		return
	}

	var settings tenant.Settings
	if err := binder.JSON(r, &settings); err != nil {
		s.errs.render(w, r, err)
		return
	}

	t, err := s.svc.Directory.UpdateSettings(r.Context(), tenantID, settings)
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	respond(w, http.StatusOK, t)
}

// canManageSettings allows a tenant's own administrators and platform admins.
func (s *Server) canManageSettings(ctx context.Context, ac access.Context, tenantID string) error {
	if tenantID != ac.TenantID() {
		return s.svc.Builder.Authorize(ctx, ac, tenantID)
	}
	if ac.Can(s.svc.Authorizer, permSettingsWrite) {
		return nil
	}
	return s.svc.Builder.RequirePlatformAdmin(ctx, ac)
}

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request, ac access.Context) {
	if err := s.svc.Builder.RequirePlatformAdmin(r.Context(), ac); err != nil {
		s.errs.render(w, r, err)
		return
	}

	var q listTenantsQuery
	if err := binder.Query(r, &q); err != nil {
		s.errs.render(w, r, err)
		return
	}
	result, err := s.svc.Directory.ListTenants(r.Context(), tenant.ListParams{
		Page:       q.Page,
		PageSize:   q.PageSize,
		Search:     q.Search,
		ActiveOnly: q.Active,
	})
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *Server) deleteTenant(w http.ResponseWriter, r *http.Request, ac access.Context) {
	if err := s.svc.Builder.RequirePlatformAdmin(r.Context(), ac); err != nil {
		s.errs.render(w, r, err)
		return
	}
	if err := s.svc.Directory.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.errs.render(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
