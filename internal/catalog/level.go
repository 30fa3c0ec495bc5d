package catalog

import (
	"fmt"
	"math"
	"os"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	layerTerrain = "terrain"
	layerUnits   = "units"

	// fallbackTerrain fills tiles not listed in the terrain layer when the
	// level does not name a default.
	fallbackTerrain = "default"

	// MaxLevelSide bounds the width and height of a level's grid.
	MaxLevelSide = 1024

	// maxCoordinate keeps bounding box arithmetic clear of int overflow.
	maxCoordinate = 1 << 30
)

// Level is a decoded level layout. Layers map an entry name (terrain or role)
// to the points carrying it, in level coordinates.
type Level struct {
	Name           string
	Schema         string
	DefaultTerrain string
	Terrain        map[string][]Point
	Units          map[string][]Point

	// Bounding box of every point in every layer.
	Min, Max domain.Position
}

// Size returns the width and height of the grid the level produces.
func (l *Level) Size() (int, int) {
	return l.Max.X - l.Min.X + 1, l.Max.Y - l.Min.Y + 1
}

// ToGrid converts level coordinates into grid coordinates.
func (l *Level) ToGrid(x, y int) domain.Position {
	return domain.Pos(x-l.Min.X, y-l.Min.Y)
}

// LoadLevel reads a level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// ParseLevel decodes a level document and checks what can be checked without
// a catalog. Layers other than terrain and units only widen the bounds.
func ParseLevel(data []byte) (*Level, error) {
	var doc levelDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	units, ok := doc.Layers[layerUnits]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q layer", ErrInvalidLevel, layerUnits)
	}

	lvl := &Level{
		Name:           doc.Name,
		Schema:         doc.Schema,
		DefaultTerrain: doc.DefaultTerrain,
		Terrain:        doc.Layers[layerTerrain],
		Units:          units,
		Min:            domain.Pos(math.MaxInt, math.MaxInt),
		Max:            domain.Pos(math.MinInt, math.MinInt),
	}
	if lvl.DefaultTerrain == "" {
		lvl.DefaultTerrain = fallbackTerrain
	}

	points := 0
	for name, layer := range doc.Layers {
		if name != layerTerrain && name != layerUnits {
			logger.Log.WithFields(logrus.Fields{
				"component": "level",
				"level":     doc.Name,
				"layer":     name,
			}).Warn("Unused level layer.")
		}
		for _, pts := range layer {
			for _, p := range pts {
				if !inCoordinateRange(p[0]) || !inCoordinateRange(p[1]) {
					return nil, fmt.Errorf("%w: layer %q: point (%d,%d) is out of range", ErrInvalidLevel, name, p[0], p[1])
				}
				points++
				lvl.Min = domain.Pos(min(lvl.Min.X, p[0]), min(lvl.Min.Y, p[1]))
				lvl.Max = domain.Pos(max(lvl.Max.X, p[0]), max(lvl.Max.Y, p[1]))
			}
		}
	}
	if points == 0 {
		return nil, fmt.Errorf("%w: level has no points", ErrInvalidLevel)
	}
	if w, h := lvl.Size(); w > MaxLevelSide || h > MaxLevelSide {
		return nil, fmt.Errorf("%w: level spans %dx%d tiles, limit is %d per side", ErrInvalidLevel, w, h, MaxLevelSide)
	}
	return lvl, nil
}

func inCoordinateRange(v int) bool {
	return v >= -maxCoordinate && v <= maxCoordinate
}

// BuildGrid creates the match grid: terrain from the terrain layer (owner from
// the point's faction code), the default terrain elsewhere, then one unit per
// units layer point.
func BuildGrid(lvl *Level, cat *domain.Catalog) (*domain.Grid, error) {
	v := &validator{sentinel: ErrInvalidLevel}
	levelLogger := logger.Log.WithFields(logrus.Fields{
		"component": "level",
		"level":     lvl.Name,
	})

	def, ok := cat.Terrain[lvl.DefaultTerrain]
	if !ok {
		return nil, fmt.Errorf("%w: default terrain %q not in catalog", ErrInvalidLevel, lvl.DefaultTerrain)
	}

	w, h := lvl.Size()
	tiles := make(map[domain.Position]domain.Tile)
	for _, name := range sortedKeys(lvl.Terrain) {
		terrain, ok := cat.Terrain[name]
		if !ok {
			v.fail("unknown terrain %q", name)
			continue
		}
		for _, p := range lvl.Terrain[name] {
			pos := lvl.ToGrid(p[0], p[1])
			owner, ok := domain.FactionFromCode(p[2])
			if !ok {
				v.fail("terrain %q at (%d,%d): unknown faction code %d", name, p[0], p[1], p[2])
				continue
			}
			if prev, dup := tiles[pos]; dup {
				v.fail("terrain at (%d,%d) is both %q and %q", p[0], p[1], prev.Terrain.Name, name)
				continue
			}
			if owner != domain.FactionNone && !terrain.CanBeCaptured() {
				levelLogger.WithFields(logrus.Fields{
					"faction": owner,
					"terrain": name,
				}).Warn("Faction owns a tile that cannot be captured.")
			}
			tiles[pos] = domain.Tile{Terrain: terrain, Owner: owner}
		}
	}

	type placement struct {
		kind    *domain.UnitKind
		faction domain.Faction
	}
	units := make(map[domain.Position]placement)
	for _, role := range sortedKeys(lvl.Units) {
		kind := cat.Kind(role)
		if kind == nil {
			v.fail("unknown role %q", role)
			continue
		}
		for _, p := range lvl.Units[role] {
			faction, ok := domain.FactionFromCode(p[2])
			switch {
			case !ok:
				v.fail("%s at (%d,%d): unknown faction code %d", role, p[0], p[1], p[2])
				continue
			case faction == domain.FactionNone:
				v.fail("%s at (%d,%d): unit without a faction", role, p[0], p[1])
				continue
			}
			pos := lvl.ToGrid(p[0], p[1])
			if _, dup := units[pos]; dup {
				v.fail("two units at (%d,%d)", p[0], p[1])
				continue
			}
			units[pos] = placement{kind: kind, faction: faction}
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	g := domain.NewGrid(w, h, func(p domain.Position) domain.Tile {
		if t, ok := tiles[p]; ok {
			return t
		}
		return domain.Tile{Terrain: def}
	})
	for pos, pl := range units {
		g.AddUnit(domain.NewUnit(pl.kind, pl.faction), pos)
	}

	levelLogger.WithFields(logrus.Fields{
		"width":  w,
		"height": h,
		"units":  len(units),
	}).Info("Level built.")
	return g, nil
}
