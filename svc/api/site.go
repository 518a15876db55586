package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelsuite/tenancy/pkg/binder"
	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/pkg/validator"
	"github.com/travelsuite/tenancy/svc/provision"
)

// Reasons a subdomain cannot be claimed.
const (
	ReasonInvalid  = "invalid"
	ReasonReserved = "reserved"
	ReasonTaken    = "taken"
)

type availabilityResponse struct {
	Subdomain string `json:"subdomain"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type suggestionsResponse struct {
	Name        string   `json:"name"`
	Suggestions []string `json:"suggestions"`
}

type suggestionsQuery struct {
	Name  string `query:"name"`
	Count int    `query:"count"`
}

const maxSuggestions = 10

type registrationResponse struct {
	Tenant *tenant.Tenant `json:"tenant"`
	Host   string         `json:"host"`
}

// site returns the branding of the tenant serving the request host.
func (s *Server) site(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		s.errs.render(w, r, tenant.ErrNoTenantInContext)
		return
	}
	respond(w, http.StatusOK, t)
}

func (s *Server) subdomainAvailability(w http.ResponseWriter, r *http.Request) {
	name := tenant.NormalizeSubdomain(chi.URLParam(r, "name"))
	resp := availabilityResponse{Subdomain: name}

	if err := tenant.ValidateSubdomain(name); err != nil {
		resp.Reason = ReasonInvalid
		if errors.Is(err, tenant.ErrReservedSubdomain) {
			resp.Reason = ReasonReserved
		}
		respond(w, http.StatusOK, resp)
		return
	}

	available, err := s.svc.Directory.IsSubdomainAvailable(r.Context(), name)
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	resp.Available = available
	if !available {
		resp.Reason = ReasonTaken
	}
	respond(w, http.StatusOK, resp)
}

// subdomainSuggestions proposes free subdomains for an agency name.
func (s *Server) subdomainSuggestions(w http.ResponseWriter, r *http.Request) {
	var q suggestionsQuery
	if err := binder.Query(r, &q); err != nil {
		s.errs.render(w, r, err)
		return
	}
	if err := validator.Apply(validator.Required("name", q.Name)); err != nil {
		s.errs.render(w, r, err)
		return
	}

	suggestions, err := s.svc.Directory.SuggestSubdomains(r.Context(), q.Name, min(q.Count, maxSuggestions))
	if err != nil {
		s.errs.render(w, r, err)
		return
	}
	respond(w, http.StatusOK, suggestionsResponse{Name: q.Name, Suggestions: suggestions})
}

// register provisions a new tenant with its administrator. It is reachable
// only while registration is enabled.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.RegistrationEnabled {
		s.errs.render(w, r, provision.ErrRegistrationClosed)
		return
	}

	var req provision.Request
	if err := binder.JSON(r, &req); err != nil {
		s.errs.render(w, r, err)
		return
	}

	t, err := s.svc.Provisioner.CreateTenant(r.Context(), req)
	if err != nil {
		s.errs.render(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "tenant registered",
		logger.Component("api"), logger.TenantID(t.ID), logger.Subdomain(t.Subdomain), logger.Event("tenant.registered"))
	respond(w, http.StatusCreated, registrationResponse{
		Tenant: t,
		Host:   t.Subdomain + "." + s.cfg.BaseDomain,
	})
}
