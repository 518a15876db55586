package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelsuite/tenancy/pkg/access"
	"github.com/travelsuite/tenancy/pkg/httpserver"
	"github.com/travelsuite/tenancy/pkg/jwt"
	"github.com/travelsuite/tenancy/pkg/ratelimiter"
	"github.com/travelsuite/tenancy/pkg/tenant"
	"github.com/travelsuite/tenancy/svc/api"
	"github.com/travelsuite/tenancy/svc/memstore"
	"github.com/travelsuite/tenancy/svc/provision"
)

const (
	baseDomain    = "app.test"
	rootEmail     = "root@platform.test"
	adminPassword = "Rahasia123"
)

var multiVars = map[string]string{
	"TENANT_MODE":                 "multi",
	"TENANT_BASE_DOMAIN":          baseDomain,
	"TENANT_REGISTRATION_ENABLED": "true",
}

type harness struct {
	cfg     tenant.Config
	store   *memstore.Store
	handler http.Handler
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Meta  map[string]any   `json:"meta"`
	Error *api.ErrorDetail `json:"error"`
}

func newHarness(t *testing.T, vars map[string]string, opts ...api.Option) *harness {
	t.Helper()
	ctx := context.Background()

	cfg := tenant.ParseConfig(vars)
	store := memstore.New()
	dir := tenant.NewDirectory(store,
		tenant.WithBaseDomain(cfg.BaseDomain),
		tenant.WithProtectedTenants(cfg.DefaultTenantID),
	)
	prov := provision.NewProvisioner(store, dir, provision.WithBcryptCost(bcrypt.MinCost))
	_, err := prov.EnsureDefaultTenant(ctx, cfg, "Default Travel")
	require.NoError(t, err)
	_, err = prov.EnsurePlatformAdmin(ctx, provision.PlatformAdmin{Email: rootEmail, Password: adminPassword})
	require.NoError(t, err)

	tokens, err := jwt.NewFromString("test-signing-key", jwt.WithIssuer("tenancy-test"))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	opts = append([]api.Option{
		api.WithMetrics(api.NewMetrics(reg), reg),
		api.WithReadinessChecks(httpserver.Check{
			Name: "store",
			Fn:   func(r *http.Request) error { return store.Ping(r.Context()) },
		}),
	}, opts...)
	srv := api.New(cfg, api.Services{
		Directory:   dir,
		Resolver:    tenant.NewResolver(cfg, dir),
		Builder:     access.NewBuilder(cfg, store, dir),
		Sessions:    access.NewJWTSessions(tokens, time.Hour),
		Login:       access.NewPasswordLogin(store, nil),
		Provisioner: prov,
		Employees:   store,
	}, opts...)
	return &harness{cfg: cfg, store: store, handler: srv.Handler()}
}

func (h *harness) do(t *testing.T, method, host, path, token string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Host = host
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (h *harness) register(t *testing.T, name, subdomain, email string) *tenant.Tenant {
	t.Helper()
	code, env := h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{
		"name":           name,
		"subdomain":      subdomain,
		"business_types": []string{"UMROH", "TOUR"},
		"admin_name":     "Admin " + name,
		"admin_email":    email,
		"admin_password": adminPassword,
	})
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	var out struct {
		Tenant *tenant.Tenant `json:"tenant"`
		Host   string         `json:"host"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, subdomain+"."+baseDomain, out.Host)
	return out.Tenant
}

func (h *harness) login(t *testing.T, host, email string) string {
	t.Helper()
	code, env := h.do(t, http.MethodPost, host, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, code, "%+v", env.Error)
	var out struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Bearer", out.TokenType)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tenancy_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "tenancy_http_request_duration_seconds")
}

func TestSite(t *testing.T) {
	t.Parallel()

	t.Run("multi tenant", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, multiVars)
		acme := h.register(t, "Acme Travel", "acme", "owner@acme.test")

		code, env := h.do(t, http.MethodGet, baseDomain, "/api/site", "", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, tenant.DefaultTenantID, decode[tenant.Tenant](t, env).ID)

		code, env = h.do(t, http.MethodGet, "ACME."+baseDomain+":443", "/api/site", "", nil)
		require.Equal(t, http.StatusOK, code)
		site := decode[tenant.Tenant](t, env)
		assert.Equal(t, acme.ID, site.ID)
		assert.Equal(t, "IDR", site.Currency)

		code, env = h.do(t, http.MethodGet, "ghost."+baseDomain, "/api/site", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "tenant_not_found", env.Error.Code)
		assert.NotEmpty(t, env.Error.RequestID)
	})

	t.Run("single tenant ignores host", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, map[string]string{"TENANT_MODE": "single"})
		for _, host := range []string{"localhost:3000", "ghost.example.test"} {
			code, env := h.do(t, http.MethodGet, host, "/api/site", "", nil)
			require.Equal(t, http.StatusOK, code, host)
			assert.Equal(t, tenant.DefaultTenantID, decode[tenant.Tenant](t, env).ID)
		}
	})
}

func TestSubdomainAvailability(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	h.register(t, "Acme Travel", "acme", "owner@acme.test")

	type availability struct {
		Subdomain string `json:"subdomain"`
		Available bool   `json:"available"`
		Reason    string `json:"reason"`
	}
	tests := []struct {
		name      string
		available bool
		reason    string
	}{
		{"berkah", true, ""},
		{"Berkah", true, ""},
		{"acme", false, api.ReasonTaken},
		{"admin", false, api.ReasonReserved},
		{"default", false, api.ReasonReserved},
		{"ab", false, api.ReasonInvalid},
		{"-acme", false, api.ReasonInvalid},
	}
	for _, tt := range tests {
		code, env := h.do(t, http.MethodGet, baseDomain, "/api/subdomains/"+tt.name+"/availability", "", nil)
		require.Equal(t, http.StatusOK, code, tt.name)
		got := decode[availability](t, env)
		assert.Equal(t, tt.available, got.Available, tt.name)
		assert.Equal(t, tt.reason, got.Reason, tt.name)
	}
}

func TestSubdomainSuggestions(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	h.register(t, "Bali Tours", "bali-tours", "owner@bali.test")

	type suggestions struct {
		Name        string   `json:"name"`
		Suggestions []string `json:"suggestions"`
	}

	code, env := h.do(t, http.MethodGet, baseDomain, "/api/subdomains/suggestions?name=Bali+Tours&count=2", "", nil)
	require.Equal(t, http.StatusOK, code, "%+v", env.Error)
	got := decode[suggestions](t, env)
	assert.Equal(t, []string{"bali-tours-travel", "bali-tours-tours"}, got.Suggestions)

	code, env = h.do(t, http.MethodGet, baseDomain, "/api/subdomains/suggestions", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, env.Error.Details, "name")

	code, _ = h.do(t, http.MethodGet, baseDomain, "/api/subdomains/suggestions?name=x&count=many", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	h := newHarness(t, multiVars, api.WithRateLimiter(bucket))
	creds := map[string]string{"email": rootEmail, "password": "wrong-password"}

	for range 2 {
		code, _ := h.do(t, http.MethodPost, baseDomain, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, code)
	}

	code, env := h.do(t, http.MethodPost, baseDomain, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "too_many_requests", env.Error.Code)

	// Unlimited routes stay reachable.
	code, _ = h.do(t, http.MethodGet, baseDomain, "/api/site", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, map[string]string{"TENANT_MODE": "multi", "TENANT_BASE_DOMAIN": baseDomain})
		code, env := h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{"name": "Acme"})
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "registration_closed", env.Error.Code)
		tenants, _, _, _ := h.store.Counts()
		assert.Equal(t, 1, tenants)
	})

	t.Run("validation and conflicts", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, multiVars)
		h.register(t, "Acme Travel", "acme", "owner@acme.test")

		code, env := h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{
			"name":           "Bad",
			"subdomain":      "www",
			"business_types": []string{"CRUISE"},
			"admin_name":     "x",
			"admin_email":    "not-an-email",
			"admin_password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Contains(t, env.Error.Details, "subdomain")

		code, env = h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{
			"name":           "Acme Again",
			"subdomain":      "ACME",
			"business_types": []string{"TOUR"},
			"admin_name":     "Someone",
			"admin_email":    "someone@acme.test",
			"admin_password": adminPassword,
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "subdomain_taken", env.Error.Code)

		code, env = h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{
			"name":           "Berkah",
			"subdomain":      "berkah",
			"business_types": []string{"HAJI"},
			"admin_name":     "Owner",
			"admin_email":    "OWNER@acme.test",
			"admin_password": adminPassword,
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "email_taken", env.Error.Code)

		tenants, _, users, _ := h.store.Counts()
		assert.Equal(t, 2, tenants)
		assert.Equal(t, 2, users)
	})

	t.Run("rejects unknown fields and media types", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, multiVars)

		code, env := h.do(t, http.MethodPost, baseDomain, "/api/register", "", map[string]any{"tenant_id": "acme"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "bad_request", env.Error.Code)

		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("name=acme"))
		req.Host = baseDomain
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestLoginAndMe(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	acme := h.register(t, "Acme Travel", "acme", "owner@acme.test")
	h.register(t, "Bumi Travel", "bumi", "owner@bumi.test")

	type me struct {
		UserID            string   `json:"user_id"`
		TenantID          string   `json:"tenant_id"`
		Roles             []string `json:"roles"`
		IsSuperAdmin      bool     `json:"is_super_admin"`
		IsPlatformAdmin   bool     `json:"is_platform_admin"`
		AccessibleTenants []string `json:"accessible_tenants"`
		Permissions       []string `json:"permissions"`
	}

	t.Run("tenant admin", func(t *testing.T) {
		token := h.login(t, "acme."+baseDomain, "Owner@Acme.test")
		code, env := h.do(t, http.MethodGet, "acme."+baseDomain, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, code)
		got := decode[me](t, env)
		assert.Equal(t, acme.ID, got.TenantID)
		assert.Equal(t, []string{"SUPER_ADMIN"}, got.Roles)
		assert.True(t, got.IsSuperAdmin)
		assert.False(t, got.IsPlatformAdmin)
		assert.Equal(t, []string{acme.ID}, got.AccessibleTenants)
		assert.Contains(t, got.Permissions, "*")
	})

	t.Run("platform admin sees every tenant", func(t *testing.T) {
		token := h.login(t, baseDomain, rootEmail)
		code, env := h.do(t, http.MethodGet, baseDomain, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, code)
		got := decode[me](t, env)
		assert.Equal(t, tenant.DefaultTenantID, got.TenantID)
		assert.True(t, got.IsPlatformAdmin)
		assert.Len(t, got.AccessibleTenants, 3)
	})

	t.Run("wrong password", func(t *testing.T) {
		code, env := h.do(t, http.MethodPost, baseDomain, "/api/auth/login", "", map[string]string{
			"email": "owner@acme.test", "password": "Wrong12345",
		})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "invalid_credentials", env.Error.Code)
	})

	t.Run("other tenant site", func(t *testing.T) {
		code, env := h.do(t, http.MethodPost, "bumi."+baseDomain, "/api/auth/login", "", map[string]string{
			"email": "owner@acme.test", "password": adminPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "invalid_credentials", env.Error.Code)
	})

	t.Run("missing and forged tokens", func(t *testing.T) {
		for _, token := range []string{"", "not.a.jwt"} {
			code, env := h.do(t, http.MethodGet, baseDomain, "/api/me", token, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "unauthorized", env.Error.Code)
		}
	})
}

func TestEmployeesAreTenantScoped(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	h.register(t, "Acme Travel", "acme", "owner@acme.test")
	h.register(t, "Bumi Travel", "bumi", "owner@bumi.test")

	type employee struct {
		Email    string `json:"email"`
		Position string `json:"position"`
	}

	token := h.login(t, "acme."+baseDomain, "owner@acme.test")
	code, env := h.do(t, http.MethodGet, "acme."+baseDomain, "/api/employees", token, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]employee](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "owner@acme.test", list[0].Email)
	assert.Equal(t, provision.AdminPosition, list[0].Position)

	code, env = h.do(t, http.MethodGet, "acme."+baseDomain, "/api/employees?position=Driver", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]employee](t, env))
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	acme := h.register(t, "Acme Travel", "acme", "owner@acme.test")
	bumi := h.register(t, "Bumi Travel", "bumi", "owner@bumi.test")
	acmeToken := h.login(t, "acme."+baseDomain, "owner@acme.test")
	rootToken := h.login(t, baseDomain, rootEmail)

	t.Run("own tenant", func(t *testing.T) {
		code, env := h.do(t, http.MethodPatch, "acme."+baseDomain, "/api/tenant/settings", acmeToken, map[string]any{
			"name":     "Acme Tours",
			"currency": "usd",
			"domain":   "Tours.Acme.test",
		})
		require.Equal(t, http.StatusOK, code, "%+v", env.Error)
		got := decode[tenant.Tenant](t, env)
		assert.Equal(t, "Acme Tours", got.Name)
		assert.Equal(t, "USD", got.Currency)

		code, env = h.do(t, http.MethodGet, "tours.acme.test", "/api/site", "", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, acme.ID, decode[tenant.Tenant](t, env).ID)
	})

	t.Run("invalid values", func(t *testing.T) {
		code, env := h.do(t, http.MethodPatch, "acme."+baseDomain, "/api/tenant/settings", acmeToken, map[string]any{
			"timezone": "Mars/Olympus",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, env.Error.Details, "timezone")
	})

	t.Run("cross tenant is forbidden", func(t *testing.T) {
		code, env := h.do(t, http.MethodPatch, "acme."+baseDomain, "/api/admin/tenants/"+bumi.ID+"/settings", acmeToken, map[string]any{
			"name": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "forbidden", env.Error.Code)

		code, env = h.do(t, http.MethodGet, "bumi."+baseDomain, "/api/site", "", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Bumi Travel", decode[tenant.Tenant](t, env).Name)
	})

	t.Run("platform admin", func(t *testing.T) {
		code, _ := h.do(t, http.MethodPatch, baseDomain, "/api/admin/tenants/"+bumi.ID+"/settings", rootToken, map[string]any{
			"name": "Bumi Holidays",
		})
		assert.Equal(t, http.StatusOK, code)

		code, env := h.do(t, http.MethodPatch, baseDomain, "/api/admin/tenants/"+bumi.ID+"/settings", rootToken, map[string]any{
			"domain": "tours.acme.test",
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "domain_taken", env.Error.Code)
	})
}

func TestAdminTenants(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	h.register(t, "Acme Travel", "acme", "owner@acme.test")
	bumi := h.register(t, "Bumi Travel", "bumi", "owner@bumi.test")
	acmeToken := h.login(t, "acme."+baseDomain, "owner@acme.test")
	rootToken := h.login(t, baseDomain, rootEmail)

	code, _ := h.do(t, http.MethodGet, baseDomain, "/api/admin/tenants", acmeToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = h.do(t, http.MethodDelete, baseDomain, "/api/admin/tenants/"+bumi.ID, acmeToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := h.do(t, http.MethodGet, baseDomain, "/api/admin/tenants?page_size=2", rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[tenant.ListResult](t, env)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Tenants, 2)

	code, env = h.do(t, http.MethodGet, baseDomain, "/api/admin/tenants?q=ACM", rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[tenant.ListResult](t, env).Total)

	code, _ = h.do(t, http.MethodGet, baseDomain, "/api/admin/tenants?page=x", rootToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = h.do(t, http.MethodDelete, baseDomain, "/api/admin/tenants/"+tenant.DefaultTenantID, rootToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "tenant_protected", env.Error.Code)

	code, _ = h.do(t, http.MethodDelete, baseDomain, "/api/admin/tenants/"+bumi.ID, rootToken, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = h.do(t, http.MethodGet, "bumi."+baseDomain, "/api/site", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = h.do(t, http.MethodDelete, baseDomain, "/api/admin/tenants/"+bumi.ID, rootToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "tenant_not_found", env.Error.Code)

	code, env = h.do(t, http.MethodGet, baseDomain, "/api/subdomains/bumi/availability", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"available":false`)
}

func TestDeletedTenantLosesAccess(t *testing.T) {
	t.Parallel()
	h := newHarness(t, multiVars)
	bumi := h.register(t, "Bumi Travel", "bumi", "owner@bumi.test")
	bumiToken := h.login(t, "bumi."+baseDomain, "owner@bumi.test")
	rootToken := h.login(t, baseDomain, rootEmail)

	code, _ := h.do(t, http.MethodGet, baseDomain, "/api/employees", bumiToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = h.do(t, http.MethodDelete, baseDomain, "/api/admin/tenants/"+bumi.ID, rootToken, nil)
	require.Equal(t, http.StatusNoContent, code)

	for _, path := range []string{"/api/employees", "/api/me"} {
		code, env := h.do(t, http.MethodGet, baseDomain, path, bumiToken, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, "tenant_not_found", env.Error.Code, path)
	}

	code, env := h.do(t, http.MethodPost, baseDomain, "/api/auth/login", "", map[string]string{
		"email": "owner@bumi.test", "password": adminPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_credentials", env.Error.Code)

	code, _ = h.do(t, http.MethodGet, baseDomain, "/api/me", rootToken, nil)
	assert.Equal(t, http.StatusOK, code)
}
