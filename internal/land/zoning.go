package land

// District is the building zone of a parcel: a DAO plaza at the center, a
// residential ring around it, and four themed quadrants beyond.
type District string

// Building districts
const (
	DistrictDAO           District = "DAO"
	DistrictResidential   District = "RESIDENTIAL"
	DistrictCommercial    District = "COMMERCIAL"
	DistrictIndustrial    District = "INDUSTRIAL"
	DistrictEntertainment District = "ENTERTAINMENT"
	DistrictDefi          District = "DEFI"
)

// Zone radii as fractions of the grid width.
const (
	PlazaRadiusFraction       = 0.1
	ResidentialRadiusFraction = 0.2
)

// FounderSpacing is the row-major index stride of founder plots within the core.
const FounderSpacing = 10

// Districts lists every building district.
func Districts() []District {
	return []District{
		DistrictDAO,
		DistrictResidential,
		DistrictCommercial,
		DistrictIndustrial,
		DistrictEntertainment,
		DistrictDefi,
	}
}

// CalculateDistrict assigns the building district of cell (x, z).
func CalculateDistrict(x, z, gridWidth int) District {
	d := DistanceFromCenter(x, z, gridWidth)
	w := float64(gridWidth)

	if d < w*PlazaRadiusFraction {
		return DistrictDAO
	}
	if d < w*ResidentialRadiusFraction {
		return DistrictResidential
	}

	mid := w / 2
	west := float64(x) < mid
	south := float64(z) < mid
	switch {
	case west && south:
		return DistrictCommercial
	case !west && south:
		return DistrictIndustrial
	case west && !south:
		return DistrictEntertainment
	default:
		return DistrictDefi
	}
}

// IsFounderPlot reports whether cell (x, z) is one of the evenly spaced founder plots of the core.
func IsFounderPlot(x, z, gridWidth int) bool {
	if CalculateTier(x, z, gridWidth) != Core {
		return false
	}
	return (z*gridWidth+x)%FounderSpacing == 0
}

// IsMainStreet reports whether the cell lies on one of the two center lines.
func IsMainStreet(x, z, gridWidth int) bool {
	mid := gridWidth / 2
	return x == mid || z == mid
}

// IsCornerLot reports whether the cell sits where a grid edge or main street
// crosses another grid edge or main street.
func IsCornerLot(x, z, gridWidth int) bool {
	return onStreetLine(x, gridWidth) && onStreetLine(z, gridWidth)
}

func onStreetLine(v, gridWidth int) bool {
	return v == 0 || v == gridWidth-1 || v == gridWidth/2
}

// Attributes is everything derivable about a cell without pricing.
type Attributes struct {
	Tier       Tier     `json:"tier"`
	District   District `json:"district"`
	Founder    bool     `json:"founder"`
	Corner     bool     `json:"corner"`
	MainStreet bool     `json:"main_street"`
	MaxHeight  int      `json:"max_height"`
}

// Derive computes the attributes of cell (x, z) using the table's height limits.
func (p PricingTable) Derive(x, z, gridWidth int) Attributes {
	tier := CalculateTier(x, z, gridWidth)
	return Attributes{
		Tier:       tier,
		District:   CalculateDistrict(x, z, gridWidth),
		Founder:    IsFounderPlot(x, z, gridWidth),
		Corner:     IsCornerLot(x, z, gridWidth),
		MainStreet: IsMainStreet(x, z, gridWidth),
		MaxHeight:  p.MaxHeight(tier),
	}
}
