package world

import (
	"errors"
	"fmt"
	"math"
)

// Default grid dimensions used by the land system.
const (
	DefaultGridSize = 40
	DefaultCellSize = 10.0
)

// MaxGridSize bounds the side of a grid so that Size*Size fits in an int32.
const MaxGridSize = 46340

// Coordinate conversion errors
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidParcelID    = errors.New("invalid parcel id")
	ErrInvalidGrid        = errors.New("invalid grid")
)

// WorldPosition is a continuous point on the world plane.
type WorldPosition struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// ParcelCoords addresses one cell of the parcel grid.
type ParcelCoords struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// ParcelID is the row-major index of a parcel: z*size + x.
type ParcelID int

// Grid describes a square parcel grid laid over world space starting at the origin.
// A Grid is a value type; all conversions are pure.
type Grid struct {
	Size     int
	CellSize float64
}

// DefaultGrid returns the 40x40 grid with 10-unit cells.
func DefaultGrid() Grid {
	return Grid{Size: DefaultGridSize, CellSize: DefaultCellSize}
}

// NewGrid validates and returns a Grid.
func NewGrid(size int, cellSize float64) (Grid, error) {
	if size < 1 || size > MaxGridSize {
		return Grid{}, fmt.Errorf("%w: size must be between 1 and %d, got %d", ErrInvalidGrid, MaxGridSize, size)
	}
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		return Grid{}, fmt.Errorf("%w: cell size must be positive, got %f", ErrInvalidGrid, cellSize)
	}
	return Grid{Size: size, CellSize: cellSize}, nil
}

// Extent returns the world-space length of one side of the grid.
func (g Grid) Extent() float64 {
	return float64(g.Size) * g.CellSize
}

// ParcelCount returns the number of cells in the grid.
func (g Grid) ParcelCount() int {
	return g.Size * g.Size
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c ParcelCoords) bool {
	return c.X >= 0 && c.X < g.Size && c.Z >= 0 && c.Z < g.Size
}

// WorldToParcel maps a world position to the cell containing it.
// Positions outside the grid are clamped to the nearest edge cell.
func (g Grid) WorldToParcel(pos WorldPosition) ParcelCoords {
	return ParcelCoords{
		X: g.axisToCell(pos.X),
		Z: g.axisToCell(pos.Z),
	}
}

func (g Grid) axisToCell(v float64) int {
	if math.IsNaN(v) {
		v = 0
	}
	v = clamp(v, 0, g.Extent()-1)
	cell := int(math.Floor(v / g.CellSize))
	// cell sizes below one unit can leave the floor one past the last cell
	if cell >= g.Size {
		cell = g.Size - 1
	}
	if cell < 0 {
		cell = 0
	}
	return cell
}

// ParcelToWorld returns the world-space center of the cell.
func (g Grid) ParcelToWorld(c ParcelCoords) WorldPosition {
	half := g.CellSize / 2
	return WorldPosition{
		X: float64(c.X)*g.CellSize + half,
		Z: float64(c.Z)*g.CellSize + half,
	}
}

// CoordsToParcelID converts grid coordinates into a parcel id.
func (g Grid) CoordsToParcelID(c ParcelCoords) (ParcelID, error) {
	if !g.Contains(c) {
		return 0, fmt.Errorf("%w: (%d, %d) outside grid of size %d",
			ErrInvalidCoordinates, c.X, c.Z, g.Size)
	}
	return ParcelID(c.Z*g.Size + c.X), nil
}

// ParcelIDToCoords converts a parcel id back into grid coordinates.
func (g Grid) ParcelIDToCoords(id ParcelID) (ParcelCoords, error) {
	if id < 0 || int(id) >= g.ParcelCount() {
		return ParcelCoords{}, fmt.Errorf("%w: %d outside [0, %d)",
			ErrInvalidParcelID, id, g.ParcelCount())
	}
	return ParcelCoords{
		X: int(id) % g.Size,
		Z: int(id) / g.Size,
	}, nil
}

// AdjacentParcels returns the in-bounds Moore neighbours of id, ordered by row then column.
func (g Grid) AdjacentParcels(id ParcelID) ([]ParcelID, error) {
	c, err := g.ParcelIDToCoords(id)
	if err != nil {
		return nil, err
	}

	neighbours := make([]ParcelID, 0, 8)
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			n := ParcelCoords{X: c.X + dx, Z: c.Z + dz}
			if !g.Contains(n) {
				continue
			}
			neighbours = append(neighbours, ParcelID(n.Z*g.Size+n.X))
		}
	}
	return neighbours, nil
}

// IsSameParcel reports whether two world positions fall in the same cell.
func (g Grid) IsSameParcel(a, b WorldPosition) bool {
	return g.WorldToParcel(a) == g.WorldToParcel(b)
}

// ParcelDistance is the Manhattan distance between two cells.
func ParcelDistance(a, b ParcelCoords) int {
	return abs(a.X-b.X) + abs(a.Z-b.Z)
}

// WorldDistance is the Euclidean distance between two world positions.
func WorldDistance(a, b WorldPosition) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
