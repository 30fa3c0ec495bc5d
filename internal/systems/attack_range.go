package systems

import (
	"iter"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Ranges are lazy and restartable: every call of the returned sequence walks
// the geometry again. None of them filters by occupancy except Spear, whose
// rays stop at the first blocking unit.

// Empty yields nothing.
func Empty() iter.Seq[domain.Position] {
	return func(func(domain.Position) bool) {}
}

// Melee yields the in-bounds orthogonal neighbors of pos (N, E, S, W).
func Melee(g *domain.Grid, pos domain.Position) iter.Seq[domain.Position] {
	return func(yield func(domain.Position) bool) {
		for _, d := range domain.Cardinals {
			p := pos.Add(d)
			if !g.InBounds(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Ranged yields every in-bounds tile whose Manhattan distance d to pos satisfies
// minR <= d <= maxR.
//
// The walk starts at (0, +maxR) and goes round each ring clockwise:
// N->E and E->S diagonally down, S->W and W->N diagonally up. Arriving next to
// the start of the ring it steps inward, onto the start of the next ring. It
// stops on reaching the first tile of ring minR-1. Ring 0 is the origin itself.
func Ranged(g *domain.Grid, pos domain.Position, minR, maxR int) iter.Seq[domain.Position] {
	return func(yield func(domain.Position) bool) {
		lo := max(minR, 0)
		if maxR < lo {
			return
		}
		stop := domain.Position{X: 0, Y: lo - 1}
		cur := domain.Position{X: 0, Y: maxR}
		for cur != stop {
			p := pos.Add(cur)
			last := cur == domain.Position{}
			if !last {
				cur = nextOnRing(cur)
			}
			if g.InBounds(p) && !yield(p) {
				return
			}
			if last {
				return
			}
		}
	}
}

// nextOnRing applies the 8-direction turning rule to an offset on a diamond ring.
func nextOnRing(d domain.Position) domain.Position {
	sx, sy := sign(d.X), sign(d.Y)
	switch {
	case sx >= 0 && sy > 0: // N-E
		return domain.Position{X: d.X + 1, Y: d.Y - 1}
	case sx > 0 && sy <= 0: // E-S
		return domain.Position{X: d.X - 1, Y: d.Y - 1}
	case sx <= 0 && sy < 0: // S-W
		return domain.Position{X: d.X - 1, Y: d.Y + 1}
	default: // W-N
		if d.X == -1 {
			// Ring closed: drop onto the start of the next ring inward.
			return domain.Position{X: 0, Y: d.Y}
		}
		return domain.Position{X: d.X + 1, Y: d.Y + 1}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Spear walks each cardinal ray from pos up to reach tiles. A ray ends right
// after the first tile holding a unit the attacker cannot thrust through; that
// tile is still yielded.
func Spear(g *domain.Grid, attacker *domain.Unit, pos domain.Position, reach int) iter.Seq[domain.Position] {
	return func(yield func(domain.Position) bool) {
		for _, d := range domain.Cardinals {
			p := pos
			for step := 1; step <= reach; step++ {
				p = p.Add(d)
				if !g.InBounds(p) {
					break
				}
				if !yield(p) {
					return
				}
				if other := g.Unit(p); other != nil && !attacker.CanSpearThrough(other) {
					logger.Log.WithFields(logrus.Fields{
						"component": "attack_range",
						"origin":    pos,
						"blocked":   p,
					}).Debug("Spear ray stopped by unit.")
					break
				}
			}
		}
	}
}

// AttackRange selects the enumeration by the unit's attack kind.
func AttackRange(g *domain.Grid, unit *domain.Unit, pos domain.Position) iter.Seq[domain.Position] {
	rk := unit.Kind.Attack.Range
	switch rk.Type {
	case domain.RangeMelee:
		return Melee(g, pos)
	case domain.RangeRanged:
		return Ranged(g, pos, rk.Min, rk.Max)
	case domain.RangeSpear:
		return Spear(g, unit, pos, rk.Range)
	default:
		panic("unknown range kind " + rk.String())
	}
}

// PreMoveRange is the range of a unit that has not moved this action.
func PreMoveRange(g *domain.Grid, unit *domain.Unit, pos domain.Position) iter.Seq[domain.Position] {
	return AttackRange(g, unit, pos)
}

// PostMoveRange is the range after a (possibly hypothetical) move from -> to.
// Ranged units may only fire from the tile they started on.
func PostMoveRange(g *domain.Grid, unit *domain.Unit, from, to domain.Position) iter.Seq[domain.Position] {
	if unit.Kind.Attack.Range.Type == domain.RangeRanged && from != to {
		return Empty()
	}
	return AttackRange(g, unit, to)
}

// FindAttackable narrows a raw range to the tiles holding a unit the attacker can hit.
func FindAttackable(g *domain.Grid, attacker *domain.Unit, tiles iter.Seq[domain.Position]) iter.Seq2[domain.Position, *domain.Unit] {
	return func(yield func(domain.Position, *domain.Unit) bool) {
		for p := range tiles {
			other := g.Unit(p)
			if other == nil || !attacker.CanAttack(other) {
				continue
			}
			if !yield(p, other) {
				return
			}
		}
	}
}

// InRange reports whether target appears in the enumeration.
func InRange(tiles iter.Seq[domain.Position], target domain.Position) bool {
	for p := range tiles {
		if p == target {
			return true
		}
	}
	return false
}
