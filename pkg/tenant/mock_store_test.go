package tenant_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/travelsuite/tenancy/pkg/tenant"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) tenantResult(args mock.Arguments) (*tenant.Tenant, error) {
	t, _ := args.Get(0).(*tenant.Tenant)
	return t, args.Error(1)
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return m.tenantResult(m.Called(ctx, id))
}

func (m *mockStore) FindBySubdomain(ctx context.Context, sub string) (*tenant.Tenant, error) {
	return m.tenantResult(m.Called(ctx, sub))
}

func (m *mockStore) FindByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return m.tenantResult(m.Called(ctx, domain))
}

func (m *mockStore) SubdomainExists(ctx context.Context, sub string) (bool, error) {
	args := m.Called(ctx, sub)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) List(ctx context.Context, p tenant.ListParams) ([]*tenant.Tenant, int, error) {
	args := m.Called(ctx, p)
	ts, _ := args.Get(0).([]*tenant.Tenant)
	return ts, args.Int(1), args.Error(2)
}

func (m *mockStore) ActiveIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockStore) UpdateSettings(ctx context.Context, id string, s tenant.Settings) (*tenant.Tenant, error) {
	return m.tenantResult(m.Called(ctx, id, s))
}

func (m *mockStore) SoftDelete(ctx context.Context, id string) (*tenant.Tenant, error) {
	return m.tenantResult(m.Called(ctx, id))
}
