package districts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileLayout is the YAML shape of a district file.
type fileLayout struct {
	World     Bounds         `yaml:"world"`
	Districts []fileDistrict `yaml:"districts"`
}

type fileDistrict struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Color   string  `yaml:"color"`
	MinX    float64 `yaml:"min_x"`
	MaxX    float64 `yaml:"max_x"`
	MinZ    float64 `yaml:"min_z"`
	MaxZ    float64 `yaml:"max_z"`
	GridRow int     `yaml:"grid_row"`
	GridCol int     `yaml:"grid_col"`
	Locked  bool    `yaml:"locked"`
}

// LoadFile reads a district layout from a YAML file.
func LoadFile(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read district file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Map from YAML bytes.
func Parse(raw []byte) (*Map, error) {
	var layout fileLayout
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse district layout: %w", err)
	}
	if len(layout.Districts) == 0 {
		return nil, fmt.Errorf("%w: layout has no districts", ErrInvalidDefinition)
	}

	defs := make([]Definition, 0, len(layout.Districts))
	for _, d := range layout.Districts {
		defs = append(defs, Definition{
			ID:      d.ID,
			Name:    d.Name,
			Color:   d.Color,
			Bounds:  Bounds{MinX: d.MinX, MaxX: d.MaxX, MinZ: d.MinZ, MaxZ: d.MaxZ},
			GridRow: d.GridRow,
			GridCol: d.GridCol,
			Locked:  d.Locked,
		})
	}

	return NewMap(layout.World, defs)
}
