package services

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"github.com/stwalsh4118/landgrid/internal/districts"
	"github.com/stwalsh4118/landgrid/internal/logger"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// Limits for nearest-district queries
const (
	DefaultNearestLimit = 3
	MaxNearestLimit     = 50
)

var (
	ErrDistrictNotFound = errors.New("district not found")
	ErrInvalidLimit     = fmt.Errorf("limit must be between 1 and %d", MaxNearestLimit)
	ErrInvalidRadius    = errors.New("radius must be a non-negative number")
)

// NearbyDistrict is a district ranked by distance from a query point.
type NearbyDistrict struct {
	districts.Ranked
	Near bool `json:"near"`
}

// MinimapPoint is a position on the unit-square minimap.
type MinimapPoint struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// DistrictService exposes the rectangle district map.
type DistrictService interface {
	// List returns every district in lookup order.
	List() []districts.Definition

	// At returns the district containing (x, z).
	// Returns ErrDistrictNotFound when the point is in neutral territory.
	At(x, z float64) (*districts.Definition, error)

	// Get returns a district by ID, or ErrDistrictNotFound.
	Get(id string) (*districts.Definition, error)

	// Nearest returns up to limit districts ordered by center distance.
	// Each result is flagged near when its center lies within radius.
	Nearest(x, z float64, limit int, radius float64) ([]NearbyDistrict, error)

	// GeoJSON returns the district map as a FeatureCollection.
	GeoJSON() *geojson.FeatureCollection

	// Project maps a world position onto the minimap.
	Project(x, z float64) (MinimapPoint, error)

	// Unproject maps a minimap point back into world space.
	Unproject(u, v float64) (world.WorldPosition, error)
}

type districtService struct {
	dmap *districts.Map
	log  *logger.Logger
}

// NewDistrictService creates a DistrictService over dmap.
func NewDistrictService(dmap *districts.Map, log *logger.Logger) DistrictService {
	return &districtService{
		dmap: dmap,
		log:  log.WithComponent("district_service"),
	}
}

func (s *districtService) List() []districts.Definition {
	return s.dmap.All()
}

func (s *districtService) At(x, z float64) (*districts.Definition, error) {
	if !finite(x) || !finite(z) {
		return nil, fmt.Errorf("%w: (%v, %v) is not a finite position", ErrInvalidCoordinates, x, z)
	}

	d, ok := s.dmap.Lookup(x, z)
	if !ok {
		s.log.Debug("Point in neutral territory", map[string]interface{}{"x": x, "z": z})
		return nil, fmt.Errorf("%w: no district contains (%v, %v)", ErrDistrictNotFound, x, z)
	}
	return &d, nil
}

func (s *districtService) Get(id string) (*districts.Definition, error) {
	d, ok := s.dmap.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDistrictNotFound, id)
	}
	return &d, nil
}

func (s *districtService) Nearest(x, z float64, limit int, radius float64) ([]NearbyDistrict, error) {
	if !finite(x) || !finite(z) {
		return nil, fmt.Errorf("%w: (%v, %v) is not a finite position", ErrInvalidCoordinates, x, z)
	}
	if limit < 1 || limit > MaxNearestLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if radius < 0 || !finite(radius) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}

	ranked := s.dmap.ByDistance(x, z)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]NearbyDistrict, 0, len(ranked))
	for _, r := range ranked {
		near, err := s.dmap.IsNear(x, z, r.District.ID, radius)
		if err != nil {
			return nil, err
		}
		out = append(out, NearbyDistrict{Ranked: r, Near: near})
	}
	return out, nil
}

func (s *districtService) GeoJSON() *geojson.FeatureCollection {
	return s.dmap.FeatureCollection()
}

func (s *districtService) Project(x, z float64) (MinimapPoint, error) {
	if !finite(x) || !finite(z) {
		return MinimapPoint{}, fmt.Errorf("%w: (%v, %v) is not a finite position", ErrInvalidCoordinates, x, z)
	}
	u, v := s.dmap.WorldToMinimap(x, z)
	return MinimapPoint{U: u, V: v}, nil
}

func (s *districtService) Unproject(u, v float64) (world.WorldPosition, error) {
	if !finite(u) || !finite(v) {
		return world.WorldPosition{}, fmt.Errorf("%w: (%v, %v) is not a finite minimap point", ErrInvalidCoordinates, u, v)
	}
	x, z := s.dmap.MinimapToWorld(u, v)
	return world.WorldPosition{X: x, Z: z}, nil
}
