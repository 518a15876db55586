package rbac

import (
	"slices"
	"strings"
)

// RoleName is one of the fixed role names a tenant is provisioned with.
type RoleName string

const (
	SuperAdmin  RoleName = "SUPER_ADMIN"
	Admin       RoleName = "ADMIN"
	Finance     RoleName = "FINANCE"
	Operasional RoleName = "OPERASIONAL"
	Marketing   RoleName = "MARKETING"
	HRD         RoleName = "HRD"
	Inventory   RoleName = "INVENTORY"
	TourLeader  RoleName = "TOUR_LEADER"
	Agent       RoleName = "AGENT"
	Sales       RoleName = "SALES"
	Customer    RoleName = "CUSTOMER"
)

var roleNames = []RoleName{
	SuperAdmin, Admin, Finance, Operasional, Marketing, HRD,
	Inventory, TourLeader, Agent, Sales, Customer,
}

// RoleNames returns every role name in provisioning order.
func RoleNames() []RoleName {
	return slices.Clone(roleNames)
}

func (r RoleName) Valid() bool {
	return slices.Contains(roleNames, r)
}

func (r RoleName) String() string { return string(r) }

// ParseRoleName accepts a role name in any case.
func ParseRoleName(s string) (RoleName, error) {
	r := RoleName(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// RoleSet is an immutable set of role names. The zero value is empty.
type RoleSet struct {
	names []RoleName
}

// NewRoleSet keeps the recognised names from raw, deduplicated and in
// provisioning order. Unknown names are dropped.
func NewRoleSet(raw ...string) RoleSet {
	seen := make(map[RoleName]struct{}, len(raw))
	for _, s := range raw {
		if r, err := ParseRoleName(s); err == nil {
			seen[r] = struct{}{}
		}
	}
	names := make([]RoleName, 0, len(seen))
	for _, r := range roleNames {
		if _, ok := seen[r]; ok {
			names = append(names, r)
		}
	}
	return RoleSet{names: names}
}

func (s RoleSet) Has(r RoleName) bool {
	return slices.Contains(s.names, r)
}

func (s RoleSet) HasAny(rs ...RoleName) bool {
	return slices.ContainsFunc(rs, s.Has)
}

func (s RoleSet) Len() int { return len(s.names) }

// Names returns a copy of the member names.
func (s RoleSet) Names() []RoleName {
	return slices.Clone(s.names)
}

// Strings returns the member names as plain strings.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s.names))
	for i, r := range s.names {
		out[i] = string(r)
	}
	return out
}
