// Package districts classifies world positions into named rectangular districts.
//
// A Map holds an ordered list of axis-aligned rectangles. Lookups scan the
// list in order and return the first rectangle containing the point, with all
// four edges inclusive, so a point on a shared edge belongs to the earlier
// district. The canonical layout tiles the world with no gaps or overlaps, but
// the Map itself does not enforce that.
package districts

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// District map errors
var (
	ErrInvalidBounds     = errors.New("invalid bounds")
	ErrInvalidDefinition = errors.New("invalid district definition")
	ErrUnknownDistrict   = errors.New("unknown district")
)

// Bounds is an axis-aligned rectangle in world space.
type Bounds struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MinZ float64 `json:"min_z" yaml:"min_z"`
	MaxZ float64 `json:"max_z" yaml:"max_z"`
}

// Contains reports whether (x, z) lies within the bounds, edges included.
func (b Bounds) Contains(x, z float64) bool {
	return b.Bound().Contains(orb.Point{x, z})
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() world.WorldPosition {
	c := b.Bound().Center()
	return world.WorldPosition{X: c[0], Z: c[1]}
}

// Bound converts the rectangle to an orb.Bound with X on the first axis and Z on the second.
func (b Bounds) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinX, b.MinZ},
		Max: orb.Point{b.MaxX, b.MaxZ},
	}
}

func (b Bounds) validate() error {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinZ, b.MaxZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite edge in %+v", ErrInvalidBounds, b)
		}
	}
	if b.MinX > b.MaxX || b.MinZ > b.MaxZ {
		return fmt.Errorf("%w: min exceeds max in %+v", ErrInvalidBounds, b)
	}
	return nil
}

// Definition describes one district.
type Definition struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Bounds  Bounds `json:"bounds"`
	GridRow int    `json:"grid_row"`
	GridCol int    `json:"grid_col"`
	Locked  bool   `json:"locked"`
}

// Ranked pairs a district with its distance from a query point.
type Ranked struct {
	District Definition `json:"district"`
	Distance float64    `json:"distance"`
}

// Map is an immutable, ordered set of district rectangles over a world rectangle.
// It is safe for concurrent use.
type Map struct {
	world     Bounds
	districts []Definition
	index     map[string]int
}

// NewMap validates the definitions and builds a Map. The slice is copied.
func NewMap(worldBounds Bounds, defs []Definition) (*Map, error) {
	if err := worldBounds.validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if worldBounds.MinX == worldBounds.MaxX || worldBounds.MinZ == worldBounds.MaxZ {
		return nil, fmt.Errorf("world: %w: zero width or height", ErrInvalidBounds)
	}

	m := &Map{
		world:     worldBounds,
		districts: make([]Definition, len(defs)),
		index:     make(map[string]int, len(defs)),
	}
	copy(m.districts, defs)

	for i, d := range m.districts {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: district %d has no id", ErrInvalidDefinition, i)
		}
		if _, dup := m.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDefinition, d.ID)
		}
		if err := d.Bounds.validate(); err != nil {
			return nil, fmt.Errorf("district %q: %w", d.ID, err)
		}
		m.index[d.ID] = i
	}

	return m, nil
}

// WorldBounds returns the rectangle used for minimap projection.
func (m *Map) WorldBounds() Bounds {
	return m.world
}

// All returns a copy of the district list in lookup order.
func (m *Map) All() []Definition {
	out := make([]Definition, len(m.districts))
	copy(out, m.districts)
	return out
}

// Len returns the number of districts.
func (m *Map) Len() int {
	return len(m.districts)
}

// ByID returns the district with the given id.
func (m *Map) ByID(id string) (Definition, bool) {
	i, ok := m.index[id]
	if !ok {
		return Definition{}, false
	}
	return m.districts[i], true
}

// Lookup returns the first district containing (x, z).
// The second result is false when the point lies in no district.
func (m *Map) Lookup(x, z float64) (Definition, bool) {
	for _, d := range m.districts {
		if d.Bounds.Contains(x, z) {
			return d, true
		}
	}
	return Definition{}, false
}

// Center returns the midpoint of a district.
func (m *Map) Center(d Definition) world.WorldPosition {
	return d.Bounds.Center()
}

// ByDistance returns every district ordered by the distance from (x, z) to its center.
// Ties keep lookup order.
func (m *Map) ByDistance(x, z float64) []Ranked {
	p := world.WorldPosition{X: x, Z: z}
	ranked := make([]Ranked, len(m.districts))
	for i, d := range m.districts {
		ranked[i] = Ranked{
			District: d,
			Distance: world.WorldDistance(p, d.Bounds.Center()),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}

// IsNear reports whether (x, z) is within radius of the district's center.
func (m *Map) IsNear(x, z float64, id string, radius float64) (bool, error) {
	d, ok := m.ByID(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownDistrict, id)
	}
	return world.WorldDistance(world.WorldPosition{X: x, Z: z}, d.Bounds.Center()) <= radius, nil
}

// WorldToMinimap rescales a world position into the unit square.
// v is flipped so the northern (high Z) edge maps to 0. Values outside the
// world bounds fall outside [0, 1].
func (m *Map) WorldToMinimap(x, z float64) (u, v float64) {
	w := m.world
	u = (x - w.MinX) / (w.MaxX - w.MinX)
	v = 1 - (z-w.MinZ)/(w.MaxZ-w.MinZ)
	return u, v
}

// MinimapToWorld is the inverse of WorldToMinimap.
func (m *Map) MinimapToWorld(u, v float64) (x, z float64) {
	w := m.world
	x = w.MinX + u*(w.MaxX-w.MinX)
	z = w.MinZ + (1-v)*(w.MaxZ-w.MinZ)
	return x, z
}
