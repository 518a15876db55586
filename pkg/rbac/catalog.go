package rbac

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/travelsuite/tenancy/pkg/scopes"
)

// MaxInheritanceDepth bounds how many levels of inherits a role may chain.
const MaxInheritanceDepth = 10

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// DisplayName holds the localized labels of a role.
type DisplayName struct {
	ID string `yaml:"id" json:"id"`
	EN string `yaml:"en" json:"en"`
}

// Localized returns the label for lang, falling back to Indonesian.
func (d DisplayName) Localized(lang string) string {
	if lang == "en" && d.EN != "" {
		return d.EN
	}
	return d.ID
}

// RoleDefinition is a role as declared in the catalog.
type RoleDefinition struct {
	Name        RoleName    `yaml:"name"`
	DisplayName DisplayName `yaml:"display_name"`
	Permissions []string    `yaml:"permissions"`
	Inherits    []RoleName  `yaml:"inherits"`
}

type catalogFile struct {
	Permissions []string         `yaml:"permissions"`
	Roles       []RoleDefinition `yaml:"roles"`
}

// Catalog is the validated set of role definitions with inheritance already
// flattened. It is read-only after construction.
type Catalog struct {
	known     []string
	defs      map[RoleName]RoleDefinition
	effective map[RoleName][]string
}

// ParseCatalog decodes and validates a YAML catalog. Every role name in the
// closed set must be declared exactly once.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	c := &Catalog{
		known:     scopes.Normalize(f.Permissions),
		defs:      make(map[RoleName]RoleDefinition, len(f.Roles)),
		effective: make(map[RoleName][]string, len(f.Roles)),
	}
	for _, def := range f.Roles {
		if !def.Name.Valid() {
			return nil, errors.Join(ErrInvalidCatalog, ErrInvalidRole, fmt.Errorf("role %q", def.Name))
		}
		if _, dup := c.defs[def.Name]; dup {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("role %q declared twice", def.Name))
		}
		if err := scopes.Validate(def.Permissions, c.known); err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err, fmt.Errorf("role %q", def.Name))
		}
		c.defs[def.Name] = def
	}
	for _, name := range roleNames {
		if _, ok := c.defs[name]; !ok {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("role %q missing", name))
		}
	}
	for _, def := range c.defs {
		for _, parent := range def.Inherits {
			if _, ok := c.defs[parent]; !ok {
				return nil, errors.Join(ErrInvalidCatalog, ErrInvalidRole, fmt.Errorf("role %q inherits unknown %q", def.Name, parent))
			}
		}
	}

	for _, name := range roleNames {
		perms, err := c.flatten(name, nil)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		c.effective[name] = scopes.Normalize(perms)
	}
	return c, nil
}

// flatten collects the permissions of name and everything it inherits.
// path holds the chain currently being expanded.
func (c *Catalog) flatten(name RoleName, path []RoleName) ([]string, error) {
	if slices.Contains(path, name) {
		return nil, fmt.Errorf("%w: %v -> %s", ErrCircularInheritance, path, name)
	}
	if len(path) >= MaxInheritanceDepth {
		return nil, fmt.Errorf("role %q exceeds inheritance depth %d", name, MaxInheritanceDepth)
	}

	def := c.defs[name]
	perms := slices.Clone(def.Permissions)
	path = append(path, name)
	for _, parent := range def.Inherits {
		inherited, err := c.flatten(parent, slices.Clone(path))
		if err != nil {
			return nil, err
		}
		perms = append(perms, inherited...)
	}
	return perms, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded role catalog. It panics if the embedded
// file is invalid, which tests guard against.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("rbac: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Roles returns the role definitions in provisioning order.
func (c *Catalog) Roles() []RoleDefinition {
	out := make([]RoleDefinition, 0, len(roleNames))
	for _, name := range roleNames {
		def := c.defs[name]
		def.Permissions = slices.Clone(def.Permissions)
		def.Inherits = slices.Clone(def.Inherits)
		out = append(out, def)
	}
	return out
}

// Role returns the declared definition of name.
func (c *Catalog) Role(name RoleName) (RoleDefinition, bool) {
	def, ok := c.defs[name]
	if !ok {
		return RoleDefinition{}, false
	}
	def.Permissions = slices.Clone(def.Permissions)
	def.Inherits = slices.Clone(def.Inherits)
	return def, true
}

// Permissions returns the effective permissions of name, inherited ones included.
func (c *Catalog) Permissions(name RoleName) []string {
	return slices.Clone(c.effective[name])
}

// KnownPermissions lists every permission the catalog declares.
func (c *Catalog) KnownPermissions() []string {
	return slices.Clone(c.known)
}

// PermissionsFor returns the union of effective permissions of every role in set.
func (c *Catalog) PermissionsFor(set RoleSet) []string {
	var perms []string
	for _, name := range set.names {
		perms = append(perms, c.effective[name]...)
	}
	return scopes.Normalize(perms)
}
