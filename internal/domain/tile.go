package domain

// CaptureState is the in-progress capture of a tile.
// Faction == FactionNone means nobody is capturing.
type CaptureState struct {
	Faction  Faction
	Progress int
}

// Tile is one cell of the grid.
type Tile struct {
	Terrain *Terrain
	Unit    *Unit   // nil when empty
	Owner   Faction // FactionNone when not owned
	Capture CaptureState
}

// IsOccupied reports whether a unit stands on the tile.
func (t *Tile) IsOccupied() bool {
	return t.Unit != nil
}

// CanBeCaptured reports whether the tile's terrain accepts capture at all.
func (t *Tile) CanBeCaptured() bool {
	return t.Terrain != nil && t.Terrain.CanBeCaptured()
}
