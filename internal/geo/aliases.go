package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Aliases maps dataset region names to boundary feature keys, for datasets
// that store "São Paulo" where the boundary file uses "SP".
type Aliases map[string]string

// LoadAliases reads a flat YAML mapping of region name to feature key.
// An empty path yields no aliases.
func LoadAliases(path string) (Aliases, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file %s: %w", path, err)
	}

	var a Aliases
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse aliases file %s: %w", path, err)
	}
	for name, key := range a {
		if key == "" {
			return nil, fmt.Errorf("aliases file %s: empty feature key for %q", path, name)
		}
	}
	return a, nil
}

// Resolve returns the feature key for region, or region itself when it has
// no alias.
func (a Aliases) Resolve(region string) string {
	if key, ok := a[region]; ok {
		return key
	}
	return region
}
