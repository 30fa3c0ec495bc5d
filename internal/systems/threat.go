package systems

import "tactics-core/internal/domain"

// Threats collects the enemies the unit standing on origin could attack this
// action, from any tile it can end its move on. Ranged units only count the
// tile they stand on.
func Threats(g *domain.Grid, unit *domain.Unit, origin domain.Position) map[domain.Position]*domain.Unit {
	out := make(map[domain.Position]*domain.Unit)
	pf := NewPathFinder(g, unit, origin)
	for dest := range pf.Destinations() {
		for p, target := range FindAttackable(g, unit, PostMoveRange(g, unit, origin, dest)) {
			out[p] = target
		}
	}
	return out
}
