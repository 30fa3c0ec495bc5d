package domain

import "testing"

func newTestKind() *UnitKind {
	return &UnitKind{
		Name:   "soldier",
		Attack: AttackInfo{Damage: 5, Range: MeleeRange()},
		Movement: MovementInfo{
			Budget: 3,
			Class:  &MovementClass{Name: "foot", Costs: map[string]int{"grass": 1}},
		},
	}
}

func newTestGrid(w, h int) *Grid {
	return NewUniformGrid(w, h, &Terrain{Name: "grass"})
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestGrid_AddRemoveUnit(t *testing.T) {
	g := newTestGrid(4, 3)
	u := NewUnit(newTestKind(), FactionRed)

	g.AddUnit(u, Pos(2, 1))
	if g.Unit(Pos(2, 1)) != u {
		t.Fatal("unit not found after AddUnit")
	}
	if n := g.CountUnits(FactionRed); n != 1 {
		t.Errorf("CountUnits(RED) = %d, want 1", n)
	}

	removed := g.RemoveUnit(Pos(2, 1))
	if removed != u {
		t.Errorf("RemoveUnit returned wrong unit: got %v want %v", removed, u)
	}
	if g.Unit(Pos(2, 1)) != nil {
		t.Error("tile should be empty after removal")
	}
}

func TestGrid_ContractViolations(t *testing.T) {
	g := newTestGrid(3, 3)
	g.AddUnit(NewUnit(newTestKind(), FactionRed), Pos(0, 0))
	g.AddUnit(NewUnit(newTestKind(), FactionBlue), Pos(1, 0))
	if !g.Tile(Pos(0, 0)).IsOccupied() || g.Tile(Pos(2, 2)).IsOccupied() {
		t.Fatal("IsOccupied disagrees with the placed units")
	}

	expectPanic(t, "out of bounds", func() { g.Tile(Pos(3, 0)) })
	expectPanic(t, "negative", func() { g.Unit(Pos(0, -1)) })
	expectPanic(t, "double occupy", func() { g.AddUnit(NewUnit(newTestKind(), FactionRed), Pos(0, 0)) })
	expectPanic(t, "remove empty", func() { g.RemoveUnit(Pos(2, 2)) })
	expectPanic(t, "move onto occupied", func() { g.MoveUnit(Pos(0, 0), Pos(1, 0)) })
	expectPanic(t, "move empty", func() { g.MoveUnit(Pos(2, 2), Pos(2, 1)) })
	expectPanic(t, "pair same tile", func() { g.UnitPair(Pos(1, 1), Pos(1, 1)) })
}

func TestGrid_MoveUnit(t *testing.T) {
	g := newTestGrid(3, 3)
	u := NewUnit(newTestKind(), FactionRed)
	g.AddUnit(u, Pos(0, 0))

	g.MoveUnit(Pos(0, 0), Pos(0, 0))
	if g.Unit(Pos(0, 0)) != u {
		t.Fatal("move onto itself must be a no-op")
	}

	g.MoveUnit(Pos(0, 0), Pos(2, 1))
	if g.Unit(Pos(0, 0)) != nil || g.Unit(Pos(2, 1)) != u {
		t.Error("unit was not relocated")
	}
}

func TestGrid_TilePairOrder(t *testing.T) {
	g := newTestGrid(5, 5)
	a := NewUnit(newTestKind(), FactionRed)
	b := NewUnit(newTestKind(), FactionBlue)
	g.AddUnit(a, Pos(4, 4))
	g.AddUnit(b, Pos(0, 1))

	// Both argument orders must map back to the right tiles.
	ua, ub := g.UnitPair(Pos(4, 4), Pos(0, 1))
	if ua != a || ub != b {
		t.Errorf("UnitPair(high, low) = %v, %v", ua, ub)
	}
	ub, ua = g.UnitPair(Pos(0, 1), Pos(4, 4))
	if ua != a || ub != b {
		t.Errorf("UnitPair(low, high) = %v, %v", ub, ua)
	}

	ta, _ := g.TilePair(Pos(4, 4), Pos(0, 1))
	ta.Unit.Health = 3
	if g.Unit(Pos(4, 4)).Health != 3 {
		t.Error("TilePair must return pointers into grid storage")
	}
}

func TestGrid_IndexBijection(t *testing.T) {
	g := newTestGrid(7, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 7; x++ {
			p := Pos(x, y)
			if back := g.position(g.GetIndex(p)); back != p {
				t.Errorf("index round trip %v -> %v", p, back)
			}
		}
	}
}

func TestGrid_ResetSpent(t *testing.T) {
	g := newTestGrid(2, 2)
	u := NewUnit(newTestKind(), FactionRed)
	u.Spent = true
	g.AddUnit(u, Pos(1, 1))
	g.ResetSpent()
	if u.Spent {
		t.Error("spent flag survived ResetSpent")
	}
	if p, ok := g.FindUnit(u); !ok || p != Pos(1, 1) {
		t.Errorf("FindUnit = %v, %v", p, ok)
	}
}
