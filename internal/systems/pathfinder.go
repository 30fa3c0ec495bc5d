package systems

import (
	"container/heap"
	"fmt"
	"iter"
	"math/rand"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

const unreachable = -1

// PathFinder holds the minimal movement cost from origin to every tile the unit
// can reach with its movement budget. It is a snapshot: recompute after the
// grid changes.
type PathFinder struct {
	grid   *domain.Grid
	unit   *domain.Unit
	origin domain.Position
	budget int
	costs  []int // indexed like the grid, unreachable = -1
}

// NewPathFinder runs a bounded Dijkstra from origin for the unit standing there.
//
// Entering a tile costs the unit's movement class cost for its terrain. Tiles
// held by units the mover cannot pass through are never entered. A neighbor is
// queued only when the new cost is within budget and strictly lower than the
// best known one.
func NewPathFinder(g *domain.Grid, unit *domain.Unit, origin domain.Position) *PathFinder {
	w, h := g.Size()
	pf := &PathFinder{
		grid:   g,
		unit:   unit,
		origin: origin,
		budget: unit.Kind.Movement.Budget,
		costs:  make([]int, w*h),
	}
	for i := range pf.costs {
		pf.costs[i] = unreachable
	}

	class := unit.Kind.Movement.Class
	pf.costs[g.GetIndex(origin)] = 0

	open := make(frontier, 0)
	heap.Init(&open)
	open.push(origin, 0)

	expanded := 0
	for open.Len() > 0 {
		item := open.pop()
		if item.Cost > pf.costs[g.GetIndex(item.Pos)] {
			continue // stale
		}
		expanded++

		for _, d := range domain.Cardinals {
			next := item.Pos.Add(d)
			if !g.InBounds(next) {
				continue
			}
			tile := g.Tile(next)
			if tile.Unit != nil && tile.Unit != unit && !unit.CanPassThrough(tile.Unit) {
				continue
			}
			cost := item.Cost + class.Cost(tile.Terrain)
			if cost > pf.budget {
				continue
			}
			idx := g.GetIndex(next)
			if known := pf.costs[idx]; known != unreachable && known <= cost {
				continue
			}
			pf.costs[idx] = cost
			open.push(next, cost)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "pathfinder",
		"origin":    origin,
		"budget":    pf.budget,
		"class":     class.Name,
		"expanded":  expanded,
	}).Debug("Reachability search complete.")

	return pf
}

// Origin returns the tile the search started from.
func (pf *PathFinder) Origin() domain.Position {
	return pf.origin
}

// Unit returns the unit the search was computed for.
func (pf *PathFinder) Unit() *domain.Unit {
	return pf.unit
}

// Cost returns the minimal cost to reach p. Out-of-bounds tiles are simply unreachable.
func (pf *PathFinder) Cost(p domain.Position) (int, bool) {
	if !pf.grid.InBounds(p) {
		return 0, false
	}
	c := pf.costs[pf.grid.GetIndex(p)]
	return c, c != unreachable
}

// CanReach reports whether p is within budget. Allied tiles that can only be
// crossed count as reachable.
func (pf *PathFinder) CanReach(p domain.Position) bool {
	_, ok := pf.Cost(p)
	return ok
}

// CanMoveTo reports whether the unit may end its move on p: reachable and
// either empty or the origin itself.
func (pf *PathFinder) CanMoveTo(p domain.Position) bool {
	if !pf.CanReach(p) {
		return false
	}
	return p == pf.origin || pf.grid.Unit(p) == nil
}

// Reachable iterates over every reachable tile with its cost, row-major.
func (pf *PathFinder) Reachable() iter.Seq2[domain.Position, int] {
	return func(yield func(domain.Position, int) bool) {
		w, _ := pf.grid.Size()
		for i, c := range pf.costs {
			if c == unreachable {
				continue
			}
			if !yield(domain.Position{X: i % w, Y: i / w}, c) {
				return
			}
		}
	}
}

// Destinations iterates over the tiles CanMoveTo accepts.
func (pf *PathFinder) Destinations() iter.Seq[domain.Position] {
	return func(yield func(domain.Position) bool) {
		for p := range pf.Reachable() {
			if pf.CanMoveTo(p) && !yield(p) {
				return
			}
		}
	}
}

// RandomPathRev reconstructs a minimal-cost path from target back to the origin
// (both included). Each step goes to an orthogonal neighbor whose cost plus the
// cost of entering the current tile equals the current cost; when several qualify
// rng picks one. The choice only varies the shape, never the cost.
func (pf *PathFinder) RandomPathRev(target domain.Position, rng *rand.Rand) []domain.Position {
	cur, ok := pf.Cost(target)
	if !ok {
		panic(fmt.Sprintf("path requested to unreachable tile %v", target))
	}
	class := pf.unit.Kind.Movement.Class

	path := []domain.Position{target}
	pos := target
	var candidates []domain.Position
	for pos != pf.origin {
		step := class.Cost(pf.grid.Terrain(pos))
		candidates = candidates[:0]
		for _, d := range domain.Cardinals {
			prev := pos.Add(d)
			c, ok := pf.Cost(prev)
			if ok && c < cur && c+step == cur {
				candidates = append(candidates, prev)
			}
		}
		if len(candidates) == 0 {
			panic(fmt.Sprintf("no cheaper neighbor at %v (cost %d) on the way to %v", pos, cur, pf.origin))
		}
		pos = candidates[rng.Intn(len(candidates))]
		cur, _ = pf.Cost(pos)
		path = append(path, pos)
	}
	return path
}

// Path is RandomPathRev in walking order: origin first, target last.
func (pf *PathFinder) Path(target domain.Position, rng *rand.Rand) []domain.Position {
	path := pf.RandomPathRev(target, rng)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
