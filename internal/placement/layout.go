package placement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes the grid dimensions of a single tier.
type Layout struct {
	Columns int `yaml:"columns" json:"columns"`
	Rows    int `yaml:"rows" json:"rows"`
}

// Capacity returns the number of slots in the tier.
func (l Layout) Capacity() int {
	return l.Columns * l.Rows
}

// Layouts maps each tier to its grid dimensions.
type Layouts map[Tier]Layout

// DefaultLayouts returns the production grid dimensions:
// top 4x5 (20 slots), middle 5x5 (25), bottom 6x5 (30).
func DefaultLayouts() Layouts {
	return Layouts{
		TierTop:    {Columns: 4, Rows: 5},
		TierMiddle: {Columns: 5, Rows: 5},
		TierBottom: {Columns: 6, Rows: 5},
	}
}

// LoadLayouts reads tier layouts from a YAML file. An empty path returns the
// defaults. The file must define all three tiers with positive dimensions.
func LoadLayouts(path string) (Layouts, error) {
	if path == "" {
		return DefaultLayouts(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	var raw map[string]Layout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}

	layouts := make(Layouts, len(raw))
	for name, layout := range raw {
		tier := Tier(name)
		if !tier.Valid() {
			return nil, fmt.Errorf("layout file %s: unknown tier %q", path, name)
		}
		layouts[tier] = layout
	}

	if err := layouts.Validate(); err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return layouts, nil
}

// Validate checks that every tier is present with positive dimensions.
func (ls Layouts) Validate() error {
	for _, tier := range Tiers() {
		layout, ok := ls[tier]
		if !ok {
			return fmt.Errorf("missing layout for tier %q", tier)
		}
		if layout.Columns < 1 || layout.Rows < 1 {
			return fmt.Errorf("tier %q: columns and rows must be positive (got %dx%d)",
				tier, layout.Columns, layout.Rows)
		}
	}
	return nil
}
