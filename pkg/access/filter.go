package access

import "maps"

// Column names every tenant-scoped table carries.
const (
	FieldTenantID  = "tenant_id"
	FieldIsDeleted = "is_deleted"
)

// Filter is an equality filter for reads against tenant-scoped data.
type Filter map[string]any

// Data is a set of column values for a tenant-scoped insert.
type Data map[string]any

// TenantFilter returns {tenant_id, is_deleted: false} merged with extra.
// The tenant keys always override anything in extra.
func TenantFilter(tenantID string, extra map[string]any) Filter {
	f := make(Filter, len(extra)+2)
	maps.Copy(f, extra)
	f[FieldTenantID] = tenantID
	f[FieldIsDeleted] = false
	return f
}

// TenantData returns data with tenant_id set. A tenant_id already in data
// is overwritten.
func TenantData(tenantID string, data map[string]any) Data {
	d := make(Data, len(data)+1)
	maps.Copy(d, data)
	d[FieldTenantID] = tenantID
	return d
}

func (f Filter) TenantID() string {
	id, _ := f[FieldTenantID].(string)
	return id
}

func (d Data) TenantID() string {
	id, _ := d[FieldTenantID].(string)
	return id
}
