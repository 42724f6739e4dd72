package districts

// Canonical district layout edges.
const (
	canonicalWorldSize = 400.0
	canonicalCutLow    = 120.0
	canonicalCutHigh   = 280.0
)

// CanonicalWorld returns the world rectangle covered by the canonical layout.
// It matches the default 40x40 parcel grid with 10-unit cells.
func CanonicalWorld() Bounds {
	return Bounds{MinX: 0, MaxX: canonicalWorldSize, MinZ: 0, MaxZ: canonicalWorldSize}
}

// CanonicalDefinitions returns a fresh copy of the canonical 3x3 layout.
// Row 0 is the northern (high Z) band.
func CanonicalDefinitions() []Definition {
	west := [2]float64{0, canonicalCutLow}
	middle := [2]float64{canonicalCutLow, canonicalCutHigh}
	east := [2]float64{canonicalCutHigh, canonicalWorldSize}
	north, south := east, west

	rect := func(x, z [2]float64) Bounds {
		return Bounds{MinX: x[0], MaxX: x[1], MinZ: z[0], MaxZ: z[1]}
	}

	return []Definition{
		{ID: "creator-quarter", Name: "Creator Quarter", Color: "#A855F7", Bounds: rect(west, north), GridRow: 0, GridCol: 0},
		{ID: "gaming-district", Name: "Gaming District", Color: "#22D3EE", Bounds: rect(middle, north), GridRow: 0, GridCol: 1},
		{ID: "defi-district", Name: "DeFi District", Color: "#10B981", Bounds: rect(east, north), GridRow: 0, GridCol: 2},
		{ID: "social-plaza", Name: "Social Plaza", Color: "#F472B6", Bounds: rect(west, middle), GridRow: 1, GridCol: 0},
		{ID: "central-hub", Name: "Central Hub", Color: "#FACC15", Bounds: rect(middle, middle), GridRow: 1, GridCol: 1},
		{ID: "commerce-row", Name: "Commerce Row", Color: "#F97316", Bounds: rect(east, middle), GridRow: 1, GridCol: 2},
		{ID: "residential-heights", Name: "Residential Heights", Color: "#60A5FA", Bounds: rect(west, south), GridRow: 2, GridCol: 0},
		{ID: "industrial-yard", Name: "Industrial Yard", Color: "#94A3B8", Bounds: rect(middle, south), GridRow: 2, GridCol: 1},
		{ID: "void-frontier", Name: "Void Frontier", Color: "#6B21A8", Bounds: rect(east, south), GridRow: 2, GridCol: 2, Locked: true},
	}
}

// Canonical builds the canonical district map.
func Canonical() *Map {
	m, err := NewMap(CanonicalWorld(), CanonicalDefinitions())
	if err != nil {
		// the canonical table is static; failure here is a programming error
		panic(err)
	}
	return m
}
