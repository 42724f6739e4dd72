package services

import (
	"fmt"

	"github.com/stwalsh4118/landgrid/internal/districts"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// World bundles the static tables every service reads. It is never mutated
// after construction and is shared between requests.
type World struct {
	Grid      world.Grid
	Districts *districts.Map
	Pricing   land.PricingTable
	BasePrice float64
}

// NewWorld validates the pieces of a World.
func NewWorld(grid world.Grid, dmap *districts.Map, pricing land.PricingTable, basePrice float64) (World, error) {
	if _, err := world.NewGrid(grid.Size, grid.CellSize); err != nil {
		return World{}, err
	}
	if dmap == nil {
		return World{}, fmt.Errorf("district map is required")
	}
	if basePrice < 0 || !finite(basePrice) {
		return World{}, fmt.Errorf("%w: %f", ErrInvalidBasePrice, basePrice)
	}
	if err := pricing.CheckBasePrice(basePrice); err != nil {
		return World{}, fmt.Errorf("%w: %w", ErrInvalidBasePrice, err)
	}
	return World{Grid: grid, Districts: dmap, Pricing: pricing, BasePrice: basePrice}, nil
}
