package domain

import "fmt"

// Position is a tile coordinate. X is the column, Y is the row.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pos is a shorthand constructor.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Cardinal offsets in clockwise order starting north (+Y).
var Cardinals = [4]Position{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Add offsets the position by another one treated as a vector.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// ManhattanTo returns the L1 distance between two tiles.
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// IsOrthogonalNeighbor reports whether other is one of the 4 direct neighbors.
func (p Position) IsOrthogonalNeighbor(other Position) bool {
	return p.ManhattanTo(other) == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
