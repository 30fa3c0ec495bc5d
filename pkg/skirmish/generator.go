// Package skirmish generates random two-sided levels: terrain patches scattered
// over a default field, capturable objectives and one deployment zone per side.
package skirmish

import (
	"fmt"
	"maps"
	"math/rand"
	"slices"

	"tactics-core/internal/catalog"
	"tactics-core/internal/domain"
)

const (
	MapWidth   = 16
	MapHeight  = 12
	MaxPatches = 6
	MinSize    = 3
	MaxSize    = 6

	// deployDepth is the number of columns each side deploys in.
	deployDepth = 2
)

// Rect is a patch footprint. Only the interior (X+1..X+W-1) is painted, so
// patches that merely touch still leave a border of default terrain.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Options drives Generate. Terrain and role names must exist in the catalog
// the level is later built with.
type Options struct {
	Width, Height  int
	Patches        int
	DefaultTerrain string
	// PatchTerrain is drawn from for every patch.
	PatchTerrain []string
	// Objective is placed at patch centers, neutral, and one per home column
	// owned by its side. Empty disables objectives.
	Objective    string
	Roles        []string
	UnitsPerSide int
}

// DefaultOptions picks names from cat: non-capturable terrain other than the
// default for patches, the first capturable terrain as objective, every role.
func DefaultOptions(cat *domain.Catalog, defaultTerrain string) Options {
	opt := Options{
		Width:          MapWidth,
		Height:         MapHeight,
		Patches:        MaxPatches,
		DefaultTerrain: defaultTerrain,
		Roles:          slices.Sorted(maps.Keys(cat.Kinds)),
		UnitsPerSide:   4,
	}
	for _, name := range slices.Sorted(maps.Keys(cat.Terrain)) {
		t := cat.Terrain[name]
		switch {
		case name == defaultTerrain:
		case t.CanBeCaptured():
			if opt.Objective == "" {
				opt.Objective = name
			}
		default:
			opt.PatchTerrain = append(opt.PatchTerrain, name)
		}
	}
	return opt
}

// Generate creates a level. The same rng state and options always produce
// the same level. Red (code 1) deploys on the left edge, blue (code 2) on the right.
func Generate(rng *rand.Rand, opt Options) (*catalog.Level, error) {
	if opt.Width < 2*deployDepth+1 || opt.Height < 1 {
		return nil, fmt.Errorf("map %dx%d is too small", opt.Width, opt.Height)
	}
	if opt.DefaultTerrain == "" {
		return nil, fmt.Errorf("no default terrain")
	}
	if len(opt.Roles) == 0 {
		return nil, fmt.Errorf("no roles to deploy")
	}
	if opt.UnitsPerSide < 1 || opt.UnitsPerSide > deployDepth*opt.Height {
		return nil, fmt.Errorf("cannot deploy %d units per side on %d rows", opt.UnitsPerSide, opt.Height)
	}

	terrain := make(map[domain.Position]catalog.Point)
	names := make(map[domain.Position]string)
	paint := func(x, y, owner int, name string) {
		p := domain.Pos(x, y)
		terrain[p] = catalog.Point{x, y, owner}
		names[p] = name
	}

	var patches []Rect
	if len(opt.PatchTerrain) > 0 {
		for i := 0; i < opt.Patches; i++ {
			w := randRange(rng, MinSize, MaxSize)
			h := randRange(rng, MinSize, MaxSize)
			if w+2*deployDepth >= opt.Width || h >= opt.Height {
				continue
			}
			r := Rect{
				X: randRange(rng, deployDepth, opt.Width-deployDepth-w-1),
				Y: randRange(rng, 0, opt.Height-h-1),
				W: w,
				H: h,
			}
			if slices.ContainsFunc(patches, r.Intersects) {
				continue
			}
			name := opt.PatchTerrain[rng.Intn(len(opt.PatchTerrain))]
			for y := r.Y + 1; y < r.Y+r.H; y++ {
				for x := r.X + 1; x < r.X+r.W; x++ {
					paint(x, y, 0, name)
				}
			}
			patches = append(patches, r)
		}
	}

	if opt.Objective != "" {
		for _, r := range patches {
			cx, cy := r.Center()
			paint(cx, cy, 0, opt.Objective)
		}
		mid := opt.Height / 2
		paint(0, mid, int(domain.FactionRed), opt.Objective)
		paint(opt.Width-1, mid, int(domain.FactionBlue), opt.Objective)
	}

	units := make(map[domain.Position]catalog.Point)
	roles := make(map[domain.Position]string)
	deploy := func(faction domain.Faction, x0 int) {
		for placed := 0; placed < opt.UnitsPerSide; {
			p := domain.Pos(x0+rng.Intn(deployDepth), rng.Intn(opt.Height))
			if _, taken := units[p]; taken {
				continue
			}
			units[p] = catalog.Point{p.X, p.Y, int(faction)}
			roles[p] = opt.Roles[rng.Intn(len(opt.Roles))]
			placed++
		}
	}
	deploy(domain.FactionRed, 0)
	deploy(domain.FactionBlue, opt.Width-deployDepth)

	lvl := &catalog.Level{
		Name:           fmt.Sprintf("skirmish-%dx%d", opt.Width, opt.Height),
		Schema:         "generated",
		DefaultTerrain: opt.DefaultTerrain,
		Terrain:        make(map[string][]catalog.Point),
		Units:          make(map[string][]catalog.Point),
		Min:            domain.Pos(0, 0),
		Max:            domain.Pos(opt.Width-1, opt.Height-1),
	}
	// Row-major so the layer order does not depend on map iteration.
	for y := 0; y < opt.Height; y++ {
		for x := 0; x < opt.Width; x++ {
			p := domain.Pos(x, y)
			if pt, ok := terrain[p]; ok {
				lvl.Terrain[names[p]] = append(lvl.Terrain[names[p]], pt)
			}
			if pt, ok := units[p]; ok {
				lvl.Units[roles[p]] = append(lvl.Units[roles[p]], pt)
			}
		}
	}
	return lvl, nil
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
