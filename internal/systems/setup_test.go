package systems

import (
	"iter"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"
)

func init() {
	logger.Silence()
}

var (
	grass    = &domain.Terrain{Name: "grass"}
	forest   = &domain.Terrain{Name: "forest", Defense: 0.2}
	mountain = &domain.Terrain{Name: "mountain", Defense: 0.4}
	city     = &domain.Terrain{Name: "city", Defense: 0.3, Capture: 20}
)

var foot = &domain.MovementClass{
	Name: "foot",
	Costs: map[string]int{
		"grass":    1,
		"forest":   2,
		"mountain": 3,
		"city":     1,
	},
}

// newKind builds a throwaway unit kind for tests.
func newKind(name string, rk domain.RangeKind, budget int) *domain.UnitKind {
	return &domain.UnitKind{
		Name: name,
		Attack: domain.AttackInfo{
			Damage:    5,
			Range:     rk,
			Modifiers: map[string]float64{},
		},
		Defense:  domain.DefenseInfo{Value: 0, Class: "infantry"},
		Movement: domain.MovementInfo{Budget: budget, Class: foot},
	}
}

func grassGrid(w, h int) *domain.Grid {
	return domain.NewUniformGrid(w, h, grass)
}

// place spawns a unit of kind for faction at p and returns it.
func place(g *domain.Grid, kind *domain.UnitKind, f domain.Faction, p domain.Position) *domain.Unit {
	u := domain.NewUnit(kind, f)
	g.AddUnit(u, p)
	return u
}

func collect(seq iter.Seq[domain.Position]) []domain.Position {
	var out []domain.Position
	for p := range seq {
		out = append(out, p)
	}
	return out
}

func asSet(ps []domain.Position) map[domain.Position]bool {
	set := make(map[domain.Position]bool, len(ps))
	for _, p := range ps {
		set[p] = true
	}
	return set
}
