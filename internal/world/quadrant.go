package world

// QuadrantDistrict is a district of the land grid's four-quadrant layout.
type QuadrantDistrict string

// Quadrant districts. The grid is split at its midpoint on both axes.
const (
	QuadrantDefi    QuadrantDistrict = "defi"
	QuadrantCreator QuadrantDistrict = "creator"
	QuadrantGaming  QuadrantDistrict = "gaming"
	QuadrantSocial  QuadrantDistrict = "social"
)

// Quadrants lists every quadrant district in grid order.
func Quadrants() []QuadrantDistrict {
	return []QuadrantDistrict{QuadrantDefi, QuadrantCreator, QuadrantGaming, QuadrantSocial}
}

// Quadrant classifies a cell by which half of the grid it occupies on each axis.
// There is no center district: every cell lands in exactly one quadrant.
func (g Grid) Quadrant(c ParcelCoords) QuadrantDistrict {
	mid := float64(g.Size) / 2
	west := float64(c.X) < mid
	south := float64(c.Z) < mid

	switch {
	case west && south:
		return QuadrantDefi
	case !west && south:
		return QuadrantCreator
	case west && !south:
		return QuadrantGaming
	default:
		return QuadrantSocial
	}
}
