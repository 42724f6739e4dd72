package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stwalsh4118/landgrid/internal/districts"
	"github.com/stwalsh4118/landgrid/internal/land"
	"github.com/stwalsh4118/landgrid/internal/logger"
	"github.com/stwalsh4118/landgrid/internal/models"
	"github.com/stwalsh4118/landgrid/internal/repository"
	"github.com/stwalsh4118/landgrid/internal/world"
)

// Service-level errors
var (
	ErrInvalidCoordinates = world.ErrInvalidCoordinates
	ErrInvalidParcelID    = world.ErrInvalidParcelID
	ErrInvalidBasePrice   = errors.New("base price must be a non-negative number")
)

// ParcelReport is everything known about one parcel.
type ParcelReport struct {
	ID       world.ParcelID         `json:"id"`
	Coords   world.ParcelCoords     `json:"coords"`
	Center   world.WorldPosition    `json:"center"`
	Quadrant world.QuadrantDistrict `json:"quadrant"`
	land.Attributes
	// MapDistrict is the named rectangle containing the cell center, if any.
	MapDistrict *districts.Definition `json:"map_district,omitempty"`
	ForSale     bool                  `json:"for_sale"`
	Quote       land.Quote            `json:"quote"`
	Status      models.ClaimStatus    `json:"status"`
	Claim       *models.ParcelClaim   `json:"claim,omitempty"`
}

// ParcelService defines parcel lookups and pricing.
type ParcelService interface {
	// DescribeAt reports on the parcel under a world position. Positions off
	// the grid clamp to the nearest edge parcel.
	// Returns ErrInvalidCoordinates for NaN or infinite input.
	DescribeAt(ctx context.Context, x, z float64) (*ParcelReport, error)

	// Describe reports on a parcel by ID.
	// Returns ErrInvalidParcelID if id is outside the grid.
	Describe(ctx context.Context, id world.ParcelID) (*ParcelReport, error)

	// Adjacent reports on the in-bounds neighbours of a parcel.
	// Returns ErrInvalidParcelID if id is outside the grid.
	Adjacent(ctx context.Context, id world.ParcelID) ([]ParcelReport, error)

	// Quote prices a parcel against an explicit base price.
	// Returns ErrInvalidBasePrice for negative or non-finite prices and for prices
	// large enough to overflow some parcel's quote.
	Quote(ctx context.Context, id world.ParcelID, basePrice float64) (*land.Quote, error)
}

type parcelService struct {
	world World
	repo  repository.ParcelClaimRepository
	log   *logger.Logger
}

// NewParcelService creates a ParcelService over w, reading claims from repo.
func NewParcelService(w World, repo repository.ParcelClaimRepository, log *logger.Logger) ParcelService {
	return &parcelService{
		world: w,
		repo:  repo,
		log:   log.WithComponent("parcel_service"),
	}
}

func (s *parcelService) DescribeAt(ctx context.Context, x, z float64) (*ParcelReport, error) {
	if !finite(x) || !finite(z) {
		s.log.Warn("Non-finite world position", map[string]interface{}{"x": x, "z": z})
		return nil, fmt.Errorf("%w: (%v, %v) is not a finite position", ErrInvalidCoordinates, x, z)
	}

	coords := s.world.Grid.WorldToParcel(world.WorldPosition{X: x, Z: z})
	id, err := s.world.Grid.CoordsToParcelID(coords)
	if err != nil {
		// WorldToParcel always clamps into the grid
		return nil, fmt.Errorf("clamped position left the grid: %w", err)
	}

	s.log.Debug("Resolved world position", map[string]interface{}{
		"x":         x,
		"z":         z,
		"parcel_id": int(id),
	})

	return s.Describe(ctx, id)
}

func (s *parcelService) Describe(ctx context.Context, id world.ParcelID) (*ParcelReport, error) {
	report, err := s.derive(id)
	if err != nil {
		s.log.Warn("Invalid parcel id", map[string]interface{}{"parcel_id": int(id)})
		return nil, err
	}

	claim, err := s.repo.FindByParcelID(ctx, int(id))
	if err != nil {
		s.log.Error("Failed to load parcel claim", err, map[string]interface{}{"parcel_id": int(id)})
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	report.Claim = claim
	report.Status = models.Availability(claim, report.ForSale)

	return &report, nil
}

func (s *parcelService) Adjacent(ctx context.Context, id world.ParcelID) ([]ParcelReport, error) {
	neighbours, err := s.world.Grid.AdjacentParcels(id)
	if err != nil {
		s.log.Warn("Invalid parcel id", map[string]interface{}{"parcel_id": int(id)})
		return nil, err
	}

	reports := make([]ParcelReport, 0, len(neighbours))
	ids := make([]int, 0, len(neighbours))
	for _, n := range neighbours {
		report, err := s.derive(n)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
		ids = append(ids, int(n))
	}

	claims, err := s.repo.FindByParcelIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load neighbour claims", err, map[string]interface{}{
			"parcel_id":  int(id),
			"neighbours": len(ids),
		})
		return nil, fmt.Errorf("failed to load claims: %w", err)
	}

	byID := make(map[int]*models.ParcelClaim, len(claims))
	for i := range claims {
		byID[claims[i].ParcelID] = &claims[i]
	}
	for i := range reports {
		claim := byID[int(reports[i].ID)]
		reports[i].Claim = claim
		reports[i].Status = models.Availability(claim, reports[i].ForSale)
	}

	return reports, nil
}

func (s *parcelService) Quote(_ context.Context, id world.ParcelID, basePrice float64) (*land.Quote, error) {
	if basePrice < 0 || !finite(basePrice) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBasePrice, basePrice)
	}
	if err := s.world.Pricing.CheckBasePrice(basePrice); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePrice, err)
	}

	coords, err := s.world.Grid.ParcelIDToCoords(id)
	if err != nil {
		return nil, err
	}

	quote := s.world.Pricing.Quote(s.priceInput(coords, s.world.Pricing.Derive(coords.X, coords.Z, s.world.Grid.Size), basePrice))
	return &quote, nil
}

// derive computes the claim-independent part of a report.
func (s *parcelService) derive(id world.ParcelID) (ParcelReport, error) {
	grid := s.world.Grid
	coords, err := grid.ParcelIDToCoords(id)
	if err != nil {
		return ParcelReport{}, err
	}

	attrs := s.world.Pricing.Derive(coords.X, coords.Z, grid.Size)
	center := grid.ParcelToWorld(coords)

	report := ParcelReport{
		ID:         id,
		Coords:     coords,
		Center:     center,
		Quadrant:   grid.Quadrant(coords),
		Attributes: attrs,
		ForSale:    s.world.Pricing.ForSale(attrs.District),
		Quote:      s.world.Pricing.Quote(s.priceInput(coords, attrs, s.world.BasePrice)),
	}
	if d, ok := s.world.Districts.Lookup(center.X, center.Z); ok {
		report.MapDistrict = &d
	}
	return report, nil
}

func (s *parcelService) priceInput(c world.ParcelCoords, attrs land.Attributes, basePrice float64) land.PriceInput {
	return land.PriceInput{
		BasePrice:  basePrice,
		Tier:       attrs.Tier,
		District:   attrs.District,
		Founder:    attrs.Founder,
		Corner:     attrs.Corner,
		MainStreet: attrs.MainStreet,
		X:          c.X,
		Z:          c.Z,
		GridWidth:  s.world.Grid.Size,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
