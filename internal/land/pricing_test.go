package land

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateParcelPrice_CenterCell(t *testing.T) {
	price := CalculateParcelPrice(100, Core, DistrictResidential, false, false, false, 20, 20, 40)
	assert.Equal(t, int64(450), price)
}

func TestQuote_Breakdown(t *testing.T) {
	q := DefaultPricing().Quote(PriceInput{
		BasePrice: 100,
		Tier:      Core,
		District:  DistrictResidential,
		X:         20,
		Z:         20,
		GridWidth: 40,
	})

	assert.Equal(t, 3.0, q.TierMultiplier)
	assert.Equal(t, 1.0, q.DistrictMultiplier)
	assert.Equal(t, 1.0, q.ScarcityMultiplier)
	assert.Equal(t, 1.5, q.ProximityBonus)
	assert.Equal(t, 4.5, q.TotalMultiplier)
	assert.Equal(t, int64(450), q.Price)
}

func TestQuote_ProximityBonusScalesWithinCore(t *testing.T) {
	p := DefaultPricing()
	base := PriceInput{BasePrice: 100, Tier: Core, District: DistrictResidential, GridWidth: 40}

	tests := []struct {
		x, z int
		want float64
	}{
		{20, 20, 1.5},
		{20, 24, 1.25},
		{24, 20, 1.25},
		{20, 26, 1.125},
	}

	for _, tt := range tests {
		in := base
		in.X, in.Z = tt.x, tt.z
		assert.InDelta(t, tt.want, p.Quote(in).ProximityBonus, 1e-12, "cell (%d, %d)", tt.x, tt.z)
	}

	// no bonus outside the core tier even at the center
	in := base
	in.Tier, in.X, in.Z = Ring, 20, 20
	assert.Equal(t, 1.0, p.Quote(in).ProximityBonus)

	// a core tier passed for a far cell never drops below 1
	in = base
	in.X, in.Z = 0, 0
	assert.Equal(t, 1.0, p.Quote(in).ProximityBonus)
}

func TestQuote_ScarcityStacks(t *testing.T) {
	p := DefaultPricing()
	in := PriceInput{BasePrice: 100, Tier: Frontier, District: DistrictResidential, X: 0, Z: 0, GridWidth: 40}

	in.Founder = true
	assert.Equal(t, 2.0, p.Quote(in).ScarcityMultiplier)
	assert.Equal(t, int64(200), p.ParcelPrice(in))

	in.Corner = true
	assert.InDelta(t, 2.4, p.Quote(in).ScarcityMultiplier, 1e-12)

	in.MainStreet = true
	assert.InDelta(t, 2.76, p.Quote(in).ScarcityMultiplier, 1e-12)

	in.Founder, in.MainStreet = false, false
	in.BasePrice = 1000
	assert.Equal(t, int64(1200), p.ParcelPrice(in))
}

func TestQuote_FounderAtCenter(t *testing.T) {
	price := CalculateParcelPrice(100, Core, DistrictResidential, true, false, false, 20, 20, 40)
	assert.Equal(t, int64(900), price)

	ring := CalculateParcelPrice(100, Ring, DistrictResidential, true, false, false, 30, 20, 40)
	assert.Equal(t, int64(400), ring)
}

func TestQuote_DAONotForSale(t *testing.T) {
	p := DefaultPricing()
	assert.False(t, p.ForSale(DistrictDAO))
	assert.True(t, p.ForSale(DistrictDefi))

	price := CalculateParcelPrice(1_000_000, Core, DistrictDAO, true, true, true, 20, 20, 40)
	assert.Zero(t, price)
}

func TestQuote_FloorsOnceAtTheEnd(t *testing.T) {
	in := PriceInput{BasePrice: 5, Tier: Core, District: DistrictCommercial, X: 20, Z: 24, GridWidth: 40}

	q := DefaultPricing().Quote(in)
	assert.Equal(t, 5.625, q.TotalMultiplier)
	assert.Equal(t, int64(28), q.Price)

	// flooring after every step would have lost a unit
	stepwise := math.Floor(math.Floor(math.Floor(5*3.0)*1.5) * 1.25)
	assert.Equal(t, 27.0, stepwise)
}

func TestQuote_SaturatesInsteadOfOverflowing(t *testing.T) {
	p := DefaultPricing()
	in := PriceInput{BasePrice: 1e19, Tier: Frontier, District: DistrictResidential, GridWidth: 40}

	q := p.Quote(in)
	assert.Equal(t, 1.0, q.TotalMultiplier)
	assert.Equal(t, int64(math.MaxInt64), q.Price)

	in.BasePrice = 1e300
	in.Tier, in.Founder = Core, true
	assert.Equal(t, int64(math.MaxInt64), p.ParcelPrice(in))
}

func TestCheckBasePrice(t *testing.T) {
	p := DefaultPricing()

	// 3 (core) * 1.5 (commercial) * 2.76 (all scarcity) * 1.5 (center bonus)
	assert.InDelta(t, 18.63, p.MaxMultiplier(), 1e-9)

	assert.NoError(t, p.CheckBasePrice(0))
	assert.NoError(t, p.CheckBasePrice(100))
	assert.NoError(t, p.CheckBasePrice(1e17))

	assert.ErrorIs(t, p.CheckBasePrice(1e18), ErrPriceOverflow)
	assert.ErrorIs(t, p.CheckBasePrice(1e19), ErrPriceOverflow)
	assert.ErrorIs(t, p.CheckBasePrice(math.Inf(1)), ErrPriceOverflow)
}

func TestMultiplierLookups(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, 3.0, p.TierMultiplier(Core))
	assert.Equal(t, 2.0, p.TierMultiplier(Ring))
	assert.Equal(t, 1.0, p.TierMultiplier(Frontier))
	assert.Equal(t, 1.0, p.TierMultiplier(Tier(42)))

	assert.Equal(t, 0.0, p.DistrictMultiplier(DistrictDAO))
	assert.Equal(t, 1.5, p.DistrictMultiplier(DistrictCommercial))
	assert.Equal(t, 1.0, p.DistrictMultiplier(District("UNDERWATER")))

	assert.Equal(t, 120, p.MaxHeight(Core))
	assert.Equal(t, 80, p.MaxHeight(Ring))
	assert.Equal(t, 40, p.MaxHeight(Frontier))
	assert.Equal(t, 0, p.MaxHeight(Tier(42)))
}

func TestParsePricing_Overrides(t *testing.T) {
	raw := []byte(`
tiers:
  core: 5
districts:
  dao: 0.5
  defi: 2
max_heights:
  FRONTIER: 10
scarcity:
  founder: 3
core_proximity_bonus: 0
`)

	p, err := ParsePricing(raw)
	require.NoError(t, err)

	assert.Equal(t, 5.0, p.TierMultiplier(Core))
	assert.Equal(t, 2.0, p.TierMultiplier(Ring))
	assert.Equal(t, 0.5, p.DistrictMultiplier(DistrictDAO))
	assert.Equal(t, 2.0, p.DistrictMultiplier(DistrictDefi))
	assert.Equal(t, 10, p.MaxHeight(Frontier))
	assert.Equal(t, 120, p.MaxHeight(Core))

	q := p.Quote(PriceInput{BasePrice: 10, Tier: Core, District: DistrictResidential, Founder: true, Corner: true, X: 20, Z: 20, GridWidth: 40})
	assert.Equal(t, 1.0, q.ProximityBonus)
	assert.InDelta(t, 3.6, q.ScarcityMultiplier, 1e-12)

	// overrides never leak into a fresh default table
	assert.Equal(t, 3.0, DefaultPricing().TierMultiplier(Core))
}

func TestParsePricing_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed yaml", raw: "tiers: [oops"},
		{name: "unknown tier", raw: "tiers: {SUBURB: 2}"},
		{name: "negative tier", raw: "tiers: {CORE: -1}"},
		{name: "negative district", raw: "districts: {DEFI: -2}"},
		{name: "unknown height tier", raw: "max_heights: {ORBIT: 9}"},
		{name: "negative height", raw: "max_heights: {CORE: -9}"},
		{name: "negative scarcity", raw: "scarcity: {corner: -1}"},
		{name: "negative bonus", raw: "core_proximity_bonus: -0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePricing([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadPricingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers: {RING: 2.5}\n"), 0o600))

	p, err := LoadPricingFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.TierMultiplier(Ring))

	_, err = LoadPricingFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
