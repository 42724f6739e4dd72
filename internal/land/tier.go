// Package land derives gameplay attributes of a parcel from its grid coordinates.
//
// Every function here is a pure computation over its arguments. Pricing and
// height tables live in an immutable PricingTable passed by value.
package land

import (
	"fmt"
	"math"
	"strings"
)

// Tier is the concentric ring a parcel falls into.
type Tier int

// Tiers, nearest to the grid center first.
const (
	Core Tier = iota
	Ring
	Frontier
)

// Tier radii as fractions of the grid width.
const (
	CoreRadiusFraction = 0.2
	RingRadiusFraction = 0.4
)

// Tiers lists every tier from nearest to farthest.
func Tiers() []Tier {
	return []Tier{Core, Ring, Frontier}
}

func (t Tier) String() string {
	switch t {
	case Core:
		return "CORE"
	case Ring:
		return "RING"
	case Frontier:
		return "FRONTIER"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	switch t {
	case Core, Ring, Frontier:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier parses a tier name, ignoring case.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CORE":
		return Core, nil
	case "RING":
		return Ring, nil
	case "FRONTIER":
		return Frontier, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", s)
	}
}

// DistanceFromCenter is the Euclidean distance of cell (x, z) from the grid center.
func DistanceFromCenter(x, z, gridWidth int) float64 {
	c := float64(gridWidth) / 2
	return math.Hypot(float64(x)-c, float64(z)-c)
}

// CalculateTier classifies a cell by its distance from the grid center.
func CalculateTier(x, z, gridWidth int) Tier {
	d := DistanceFromCenter(x, z, gridWidth)
	w := float64(gridWidth)

	switch {
	case d < w*CoreRadiusFraction:
		return Core
	case d < w*RingRadiusFraction:
		return Ring
	default:
		return Frontier
	}
}
