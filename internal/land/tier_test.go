package land

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTier(t *testing.T) {
	tests := []struct {
		name string
		x, z int
		want Tier
	}{
		{name: "grid center", x: 20, z: 20, want: Core},
		{name: "just inside core", x: 20, z: 27, want: Core},
		{name: "core edge belongs to ring", x: 20, z: 28, want: Ring},
		{name: "inside ring", x: 30, z: 20, want: Ring},
		{name: "ring edge belongs to frontier", x: 20, z: 36, want: Frontier},
		{name: "corner", x: 0, z: 0, want: Frontier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTier(tt.x, tt.z, 40))
		})
	}
}

func TestCalculateTier_ThresholdsScaleWithWidth(t *testing.T) {
	// width 100: core < 20, ring < 40 from (50, 50)
	assert.Equal(t, Core, CalculateTier(50, 69, 100))
	assert.Equal(t, Ring, CalculateTier(50, 70, 100))
	assert.Equal(t, Ring, CalculateTier(50, 89, 100))
	assert.Equal(t, Frontier, CalculateTier(50, 90, 100))

	// the same offset is core on a large grid and frontier on a small one
	assert.Equal(t, Core, CalculateTier(55, 50, 100))
	assert.Equal(t, Frontier, CalculateTier(10, 5, 10))
}

func TestCalculateTier_MonotonicInDistance(t *testing.T) {
	const w = 40
	type cell struct {
		d    float64
		tier Tier
	}

	cells := make([]cell, 0, w*w)
	for z := 0; z < w; z++ {
		for x := 0; x < w; x++ {
			cells = append(cells, cell{d: DistanceFromCenter(x, z, w), tier: CalculateTier(x, z, w)})
		}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].d < cells[j].d })

	for i := 1; i < len(cells); i++ {
		assert.GreaterOrEqual(t, int(cells[i].tier), int(cells[i-1].tier),
			"tier moved inward between distance %f and %f", cells[i-1].d, cells[i].d)
	}
}

func TestTierText(t *testing.T) {
	for _, tier := range Tiers() {
		text, err := tier.MarshalText()
		require.NoError(t, err)

		var back Tier
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, tier, back)
	}

	parsed, err := ParseTier(" ring ")
	require.NoError(t, err)
	assert.Equal(t, Ring, parsed)

	_, err = ParseTier("suburb")
	assert.Error(t, err)

	_, err = Tier(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Tier(9)", Tier(9).String())

	data, err := json.Marshal(map[string]Tier{"tier": Frontier})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"FRONTIER"}`, string(data))
}

func TestCalculateDistrict(t *testing.T) {
	tests := []struct {
		x, z int
		want District
	}{
		{20, 20, DistrictDAO},
		{20, 23, DistrictDAO},
		{20, 24, DistrictResidential},
		{13, 20, DistrictResidential},
		{0, 0, DistrictCommercial},
		{39, 0, DistrictIndustrial},
		{0, 39, DistrictEntertainment},
		{39, 39, DistrictDefi},
		{20, 28, DistrictDefi},
		{19, 28, DistrictEntertainment},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateDistrict(tt.x, tt.z, 40), "cell (%d, %d)", tt.x, tt.z)
	}
}

func TestCalculateDistrict_CoversEveryCell(t *testing.T) {
	counts := make(map[District]int)
	for z := 0; z < 40; z++ {
		for x := 0; x < 40; x++ {
			d := CalculateDistrict(x, z, 40)
			assert.Contains(t, Districts(), d)
			counts[d]++
		}
	}
	assert.Len(t, counts, 6)
}

func TestIsFounderPlot(t *testing.T) {
	assert.True(t, IsFounderPlot(20, 20, 40))
	assert.True(t, IsFounderPlot(20, 13, 40))
	assert.False(t, IsFounderPlot(21, 20, 40))
	// index 0 is a multiple of ten but lies in the frontier
	assert.False(t, IsFounderPlot(0, 0, 40))
}

func TestIsFounderPlot_SparseCoreSubset(t *testing.T) {
	const w = 40
	founders, core := 0, 0

	for z := 0; z < w; z++ {
		for x := 0; x < w; x++ {
			founder := IsFounderPlot(x, z, w)
			isCore := CalculateTier(x, z, w) == Core
			if isCore {
				core++
			}
			if founder {
				founders++
				assert.True(t, isCore)
				assert.Zero(t, (z*w+x)%FounderSpacing)
			}
			if isCore && (z*w+x)%FounderSpacing == 0 {
				assert.True(t, founder, "core cell (%d, %d) on the founder stride", x, z)
			}
		}
	}

	assert.Positive(t, founders)
	assert.Less(t, founders, core/5)
}

func TestStreetPredicates(t *testing.T) {
	assert.True(t, IsMainStreet(20, 3, 40))
	assert.True(t, IsMainStreet(3, 20, 40))
	assert.False(t, IsMainStreet(19, 21, 40))

	corners := [][2]int{{0, 0}, {0, 39}, {39, 0}, {39, 39}, {20, 20}, {0, 20}, {20, 39}}
	for _, c := range corners {
		assert.True(t, IsCornerLot(c[0], c[1], 40), "cell %v", c)
	}
	for _, c := range [][2]int{{1, 0}, {20, 5}, {38, 39}} {
		assert.False(t, IsCornerLot(c[0], c[1], 40), "cell %v", c)
	}

	count := 0
	for z := 0; z < 40; z++ {
		for x := 0; x < 40; x++ {
			if IsCornerLot(x, z, 40) {
				count++
			}
		}
	}
	assert.Equal(t, 9, count)
}

func TestDerive(t *testing.T) {
	attrs := DefaultPricing().Derive(20, 20, 40)

	assert.Equal(t, Attributes{
		Tier:       Core,
		District:   DistrictDAO,
		Founder:    true,
		Corner:     true,
		MainStreet: true,
		MaxHeight:  120,
	}, attrs)

	edge := DefaultPricing().Derive(1, 2, 40)
	assert.Equal(t, Frontier, edge.Tier)
	assert.Equal(t, DistrictCommercial, edge.District)
	assert.Equal(t, 40, edge.MaxHeight)
	assert.False(t, edge.Founder)
}
