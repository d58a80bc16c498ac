// Package seed loads the built-in permission catalog, the default roles
// and the first superadmin account.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type PermissionEntry struct {
	Name        string `yaml:"name"`
	Resource    string `yaml:"resource"`
	Action      string `yaml:"action"`
	Description string `yaml:"description"`
}

type RoleEntry struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	AllPermissions bool     `yaml:"all_permissions"`
	Permissions    []string `yaml:"permissions"`
}

type Catalog struct {
	Permissions []PermissionEntry `yaml:"permissions"`
	Roles       []RoleEntry       `yaml:"roles"`
}

// LoadCatalog parses the embedded catalog and checks that every role only
// names permissions the catalog defines.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	known := make(map[string]bool, len(c.Permissions))
	for _, p := range c.Permissions {
		if known[p.Name] {
			return nil, fmt.Errorf("duplicate permission %q in seed catalog", p.Name)
		}
		known[p.Name] = true
	}
	for _, r := range c.Roles {
		for _, name := range r.Permissions {
			if !known[name] {
				return nil, fmt.Errorf("role %q references unknown permission %q", r.Name, name)
			}
		}
	}
	return &c, nil
}
