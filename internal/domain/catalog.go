package domain

import "fmt"

// Sprite is an opaque reference handed to the renderer. The core never reads it.
type Sprite struct {
	Texture string
	Area    *[4]int // x, y, w, h inside the texture; nil means the whole texture
}

// Terrain describes a tile type. Shared by pointer between all tiles using it.
type Terrain struct {
	Name    string
	Defense float64
	// Capture is the progress needed to take ownership of the tile.
	// 0 means the terrain cannot be captured.
	Capture int
	Sprite  *Sprite
}

// CanBeCaptured reports whether tiles of this terrain can change owner.
func (t *Terrain) CanBeCaptured() bool {
	return t.Capture > 0
}

// MovementClass maps terrain names to the cost of entering such a tile.
type MovementClass struct {
	Name  string
	Costs map[string]int
}

// Cost returns the cost of entering terrain t. A missing entry means the catalog
// was not validated, which is a programming error.
func (m *MovementClass) Cost(t *Terrain) int {
	cost, ok := m.Costs[t.Name]
	if !ok {
		panic(fmt.Sprintf("movement class %q has no cost for terrain %q", m.Name, t.Name))
	}
	return cost
}

// RangeType selects the attack range algorithm.
type RangeType uint8

const (
	RangeMelee RangeType = iota
	RangeRanged
	RangeSpear
)

var rangeTypeToString = map[RangeType]string{
	RangeMelee:  "melee",
	RangeRanged: "ranged",
	RangeSpear:  "spear",
}

func (r RangeType) String() string {
	if val, ok := rangeTypeToString[r]; ok {
		return val
	}
	return "unknown"
}

// RangeKind is Melee | Ranged(Min, Max) | Spear(Range).
// Min/Max are only meaningful for RangeRanged, Range only for RangeSpear.
type RangeKind struct {
	Type  RangeType
	Min   int
	Max   int
	Range int
}

func MeleeRange() RangeKind { return RangeKind{Type: RangeMelee} }

func RangedRange(min, max int) RangeKind {
	return RangeKind{Type: RangeRanged, Min: min, Max: max}
}

func SpearRange(r int) RangeKind { return RangeKind{Type: RangeSpear, Range: r} }

func (r RangeKind) String() string {
	switch r.Type {
	case RangeRanged:
		return fmt.Sprintf("ranged(%d..%d)", r.Min, r.Max)
	case RangeSpear:
		return fmt.Sprintf("spear(%d)", r.Range)
	default:
		return r.Type.String()
	}
}

type AttackInfo struct {
	Damage float64
	Range  RangeKind
	// Modifiers multiply Damage against a defense class. Absent classes use 1.0.
	Modifiers map[string]float64
}

// Modifier returns the damage multiplier against the given defense class.
func (a AttackInfo) Modifier(class string) float64 {
	if m, ok := a.Modifiers[class]; ok {
		return m
	}
	return 1.0
}

type DefenseInfo struct {
	Value float64
	Class string
}

type MovementInfo struct {
	Budget int
	Class  *MovementClass
}

// UnitKind is the immutable template for units ("role"). Units hold a pointer
// to it; it must never be copied or mutated after the catalog is built.
type UnitKind struct {
	Name     string
	Attack   AttackInfo
	Defense  DefenseInfo
	Movement MovementInfo
	// Capture is the capture capacity at full health. 0 means the unit cannot capture.
	Capture int
	Sprite  Sprite
}

// Catalog is the validated, read-only game data a match is built from.
type Catalog struct {
	Terrain         map[string]*Terrain
	MovementClasses map[string]*MovementClass
	Kinds           map[string]*UnitKind
	DefenseClasses  map[string]struct{}
}

// Kind returns the unit kind by name or nil.
func (c *Catalog) Kind(name string) *UnitKind {
	return c.Kinds[name]
}
