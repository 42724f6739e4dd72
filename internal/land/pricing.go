package land

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default pricing factors.
const (
	DefaultFounderMultiplier    = 2.0
	DefaultCornerMultiplier     = 1.2
	DefaultMainStreetMultiplier = 1.15
	DefaultCoreProximityBonus   = 0.5
)

// maxPrice is the first float64 that no longer fits in an int64 (2^63).
const maxPrice = float64(math.MaxInt64)

// ErrPriceOverflow is returned for base prices whose quote could exceed the int64 price range.
var ErrPriceOverflow = errors.New("price exceeds the representable range")

// PricingTable holds the multipliers and height limits used to price parcels.
// Tables are built by DefaultPricing or ParsePricing and never change afterwards.
type PricingTable struct {
	tierMultipliers     map[Tier]float64
	districtMultipliers map[District]float64
	maxHeights          map[Tier]int
	founder             float64
	corner              float64
	mainStreet          float64
	proximityBonus      float64
}

// DefaultPricing returns the standard table. DAO land has a zero multiplier: it is not for sale.
func DefaultPricing() PricingTable {
	return PricingTable{
		tierMultipliers: map[Tier]float64{
			Core:     3,
			Ring:     2,
			Frontier: 1,
		},
		districtMultipliers: map[District]float64{
			DistrictDAO:           0,
			DistrictResidential:   1.0,
			DistrictCommercial:    1.5,
			DistrictIndustrial:    0.8,
			DistrictEntertainment: 1.3,
			DistrictDefi:          1.4,
		},
		maxHeights: map[Tier]int{
			Core:     120,
			Ring:     80,
			Frontier: 40,
		},
		founder:        DefaultFounderMultiplier,
		corner:         DefaultCornerMultiplier,
		mainStreet:     DefaultMainStreetMultiplier,
		proximityBonus: DefaultCoreProximityBonus,
	}
}

// TierMultiplier returns the price multiplier for a tier, or 1 for an unknown tier.
func (p PricingTable) TierMultiplier(t Tier) float64 {
	if m, ok := p.tierMultipliers[t]; ok {
		return m
	}
	return 1
}

// DistrictMultiplier returns the price multiplier for a district, or 1 for an unknown district.
func (p PricingTable) DistrictMultiplier(d District) float64 {
	if m, ok := p.districtMultipliers[d]; ok {
		return m
	}
	return 1
}

// MaxHeight returns the building height limit for a tier, or 0 for an unknown tier.
func (p PricingTable) MaxHeight(t Tier) int {
	return p.maxHeights[t]
}

// ForSale reports whether parcels in the district can be priced above zero.
func (p PricingTable) ForSale(d District) bool {
	return p.DistrictMultiplier(d) > 0
}

// PriceInput describes a parcel to price.
type PriceInput struct {
	BasePrice  float64
	Tier       Tier
	District   District
	Founder    bool
	Corner     bool
	MainStreet bool
	X          int
	Z          int
	GridWidth  int
}

// Quote is a price together with the multipliers that produced it.
type Quote struct {
	BasePrice          float64  `json:"base_price"`
	Tier               Tier     `json:"tier"`
	District           District `json:"district"`
	TierMultiplier     float64  `json:"tier_multiplier"`
	DistrictMultiplier float64  `json:"district_multiplier"`
	ScarcityMultiplier float64  `json:"scarcity_multiplier"`
	ProximityBonus     float64  `json:"proximity_multiplier"`
	TotalMultiplier    float64  `json:"total_multiplier"`
	Price              int64    `json:"price"`
}

// Quote prices a parcel. The product of all multipliers is applied to the base
// price and floored exactly once.
func (p PricingTable) Quote(in PriceInput) Quote {
	q := Quote{
		BasePrice:          in.BasePrice,
		Tier:               in.Tier,
		District:           in.District,
		TierMultiplier:     p.TierMultiplier(in.Tier),
		DistrictMultiplier: p.DistrictMultiplier(in.District),
		ScarcityMultiplier: p.scarcity(in.Founder, in.Corner, in.MainStreet),
		ProximityBonus:     p.proximity(in.Tier, in.X, in.Z, in.GridWidth),
	}
	q.TotalMultiplier = q.TierMultiplier * q.DistrictMultiplier * q.ScarcityMultiplier * q.ProximityBonus
	q.Price = floorPrice(in.BasePrice * q.TotalMultiplier)
	return q
}

// floorPrice floors v into an int64, saturating at math.MaxInt64.
func floorPrice(v float64) int64 {
	if v >= maxPrice {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}

// MaxMultiplier returns the largest total multiplier any parcel can receive.
// Unknown tiers and districts price at 1, so the result is never below 1.
func (p PricingTable) MaxMultiplier() float64 {
	tier, district := 1.0, 1.0
	for _, m := range p.tierMultipliers {
		tier = math.Max(tier, m)
	}
	for _, m := range p.districtMultipliers {
		district = math.Max(district, m)
	}
	scarcity := math.Max(1, p.founder) * math.Max(1, p.corner) * math.Max(1, p.mainStreet)
	return tier * district * scarcity * (1 + math.Max(0, p.proximityBonus))
}

// CheckBasePrice returns ErrPriceOverflow when some parcel priced from base
// would not fit in an int64.
func (p PricingTable) CheckBasePrice(base float64) error {
	if base*p.MaxMultiplier() >= maxPrice {
		return fmt.Errorf("%w: base price %g", ErrPriceOverflow, base)
	}
	return nil
}

// ParcelPrice returns the floored price of a parcel.
func (p PricingTable) ParcelPrice(in PriceInput) int64 {
	return p.Quote(in).Price
}

func (p PricingTable) scarcity(founder, corner, mainStreet bool) float64 {
	m := 1.0
	if founder {
		m *= p.founder
	}
	if corner {
		m *= p.corner
	}
	if mainStreet {
		m *= p.mainStreet
	}
	return m
}

// proximity scales linearly from 1+bonus at the grid center to 1 at the core edge.
func (p PricingTable) proximity(t Tier, x, z, gridWidth int) float64 {
	if t != Core {
		return 1
	}
	radius := float64(gridWidth) * CoreRadiusFraction
	if radius <= 0 {
		return 1
	}
	closeness := 1 - DistanceFromCenter(x, z, gridWidth)/radius
	if closeness < 0 {
		closeness = 0
	}
	return 1 + p.proximityBonus*closeness
}

// CalculateParcelPrice prices a parcel with the default table.
func CalculateParcelPrice(basePrice float64, tier Tier, district District, founder, corner, mainStreet bool, x, z, gridWidth int) int64 {
	return DefaultPricing().ParcelPrice(PriceInput{
		BasePrice:  basePrice,
		Tier:       tier,
		District:   district,
		Founder:    founder,
		Corner:     corner,
		MainStreet: mainStreet,
		X:          x,
		Z:          z,
		GridWidth:  gridWidth,
	})
}

// pricingFile is the YAML shape of a pricing override file.
type pricingFile struct {
	Tiers      map[string]float64 `yaml:"tiers"`
	Districts  map[string]float64 `yaml:"districts"`
	MaxHeights map[string]int     `yaml:"max_heights"`
	Scarcity   struct {
		Founder    *float64 `yaml:"founder"`
		Corner     *float64 `yaml:"corner"`
		MainStreet *float64 `yaml:"main_street"`
	} `yaml:"scarcity"`
	CoreProximityBonus *float64 `yaml:"core_proximity_bonus"`
}

// LoadPricingFile reads pricing overrides from a YAML file.
func LoadPricingFile(path string) (PricingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PricingTable{}, fmt.Errorf("failed to read pricing file: %w", err)
	}
	return ParsePricing(raw)
}

// ParsePricing applies YAML overrides on top of the default table.
// Keys absent from the document keep their default values.
func ParsePricing(raw []byte) (PricingTable, error) {
	var f pricingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return PricingTable{}, fmt.Errorf("failed to parse pricing table: %w", err)
	}

	p := DefaultPricing()

	for name, m := range f.Tiers {
		t, err := ParseTier(name)
		if err != nil {
			return PricingTable{}, fmt.Errorf("tiers: %w", err)
		}
		if m < 0 {
			return PricingTable{}, fmt.Errorf("tiers: multiplier for %s must be non-negative", t)
		}
		p.tierMultipliers[t] = m
	}

	for name, m := range f.Districts {
		d := District(strings.ToUpper(strings.TrimSpace(name)))
		if m < 0 {
			return PricingTable{}, fmt.Errorf("districts: multiplier for %s must be non-negative", d)
		}
		p.districtMultipliers[d] = m
	}

	for name, h := range f.MaxHeights {
		t, err := ParseTier(name)
		if err != nil {
			return PricingTable{}, fmt.Errorf("max_heights: %w", err)
		}
		if h < 0 {
			return PricingTable{}, fmt.Errorf("max_heights: height for %s must be non-negative", t)
		}
		p.maxHeights[t] = h
	}

	overrides := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"scarcity.founder", f.Scarcity.Founder, &p.founder},
		{"scarcity.corner", f.Scarcity.Corner, &p.corner},
		{"scarcity.main_street", f.Scarcity.MainStreet, &p.mainStreet},
		{"core_proximity_bonus", f.CoreProximityBonus, &p.proximityBonus},
	}
	for _, o := range overrides {
		if o.src == nil {
			continue
		}
		if *o.src < 0 {
			return PricingTable{}, fmt.Errorf("%s must be non-negative", o.name)
		}
		*o.dst = *o.src
	}

	return p, nil
}
