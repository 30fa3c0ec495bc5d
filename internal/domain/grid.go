package domain

import (
	"fmt"
	"iter"
)

// Grid is the source of truth for terrain and occupancy.
// Tiles live in one flat slice, addressed by y*width + x.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid builds a w*h grid, asking init for every tile.
func NewGrid(w, h int, init func(Position) Tile) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("invalid grid size %dx%d", w, h))
	}
	g := &Grid{
		width:  w,
		height: h,
		tiles:  make([]Tile, w*h),
	}
	for i := range g.tiles {
		g.tiles[i] = init(g.position(i))
		if g.tiles[i].Terrain == nil {
			panic(fmt.Sprintf("tile %v created without terrain", g.position(i)))
		}
	}
	return g
}

// NewUniformGrid fills the whole grid with one terrain.
func NewUniformGrid(w, h int, terrain *Terrain) *Grid {
	return NewGrid(w, h, func(Position) Tile {
		return Tile{Terrain: terrain}
	})
}

// Size returns (width, height).
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// GetIndex converts a position to the flat offset. Out of bounds panics.
func (g *Grid) GetIndex(p Position) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("position %v out of bounds of %dx%d grid", p, g.width, g.height))
	}
	return p.Y*g.width + p.X
}

func (g *Grid) position(i int) Position {
	return Position{X: i % g.width, Y: i / g.width}
}

// Tile returns the tile at p for reading or mutation.
func (g *Grid) Tile(p Position) *Tile {
	return &g.tiles[g.GetIndex(p)]
}

// Unit returns the unit at p or nil.
func (g *Grid) Unit(p Position) *Unit {
	return g.tiles[g.GetIndex(p)].Unit
}

// Terrain returns the terrain at p.
func (g *Grid) Terrain(p Position) *Terrain {
	return g.tiles[g.GetIndex(p)].Terrain
}

// AddUnit places u on an empty tile.
func (g *Grid) AddUnit(u *Unit, p Position) {
	t := g.Tile(p)
	if t.IsOccupied() {
		panic(fmt.Sprintf("cannot add unit to occupied tile %v", p))
	}
	t.Unit = u
}

// RemoveUnit takes the unit off an occupied tile and returns it.
func (g *Grid) RemoveUnit(p Position) *Unit {
	t := g.Tile(p)
	if !t.IsOccupied() {
		panic(fmt.Sprintf("no unit to remove at %v", p))
	}
	u := t.Unit
	t.Unit = nil
	return u
}

// MoveUnit relocates the unit at from onto an empty tile. from == to is a no-op.
func (g *Grid) MoveUnit(from, to Position) {
	if from == to {
		if g.Unit(from) == nil {
			panic(fmt.Sprintf("no unit to move at %v", from))
		}
		return
	}
	src, dst := g.TilePair(from, to)
	if !src.IsOccupied() {
		panic(fmt.Sprintf("no unit to move at %v", from))
	}
	if dst.IsOccupied() {
		panic(fmt.Sprintf("cannot move unit from %v onto occupied tile %v", from, to))
	}
	dst.Unit, src.Unit = src.Unit, nil
}

// TilePair gives access to two distinct tiles at once. The slice is split at the
// higher index so each tile comes from its own half; a == b panics.
func (g *Grid) TilePair(a, b Position) (*Tile, *Tile) {
	ia, ib := g.GetIndex(a), g.GetIndex(b)
	if ia == ib {
		panic(fmt.Sprintf("tile pair requested for the same tile %v", a))
	}
	lo, hi := min(ia, ib), max(ia, ib)
	head, tail := g.tiles[:hi], g.tiles[hi:]
	first, second := &head[lo], &tail[0]
	if ia > ib {
		first, second = second, first
	}
	return first, second
}

// UnitPair returns the units on two distinct tiles (either may be nil).
func (g *Grid) UnitPair(a, b Position) (*Unit, *Unit) {
	ta, tb := g.TilePair(a, b)
	return ta.Unit, tb.Unit
}

// Units iterates over every occupied tile in row-major order.
func (g *Grid) Units() iter.Seq2[Position, *Unit] {
	return func(yield func(Position, *Unit) bool) {
		for i := range g.tiles {
			if u := g.tiles[i].Unit; u != nil {
				if !yield(g.position(i), u) {
					return
				}
			}
		}
	}
}

// CountUnits returns how many units of faction f are on the board.
func (g *Grid) CountUnits(f Faction) int {
	n := 0
	for _, u := range g.Units() {
		if u.Faction == f {
			n++
		}
	}
	return n
}

// FindUnit returns the position of u, if it is on the board.
func (g *Grid) FindUnit(u *Unit) (Position, bool) {
	for p, other := range g.Units() {
		if other == u {
			return p, true
		}
	}
	return Position{}, false
}

// ResetSpent clears the spent flag of every unit.
func (g *Grid) ResetSpent() {
	for _, u := range g.Units() {
		u.Spent = false
	}
}
