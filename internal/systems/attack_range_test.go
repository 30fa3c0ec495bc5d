package systems

import (
	"testing"

	"tactics-core/internal/domain"
)

// bruteForce lists in-bounds tiles at Manhattan distance within [minR, maxR].
func bruteForce(g *domain.Grid, pos domain.Position, minR, maxR int) map[domain.Position]bool {
	w, h := g.Size()
	set := make(map[domain.Position]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := domain.Pos(x, y)
			d := pos.ManhattanTo(p)
			if d >= minR && d <= maxR {
				set[p] = true
			}
		}
	}
	return set
}

func TestMelee_Interior(t *testing.T) {
	g := grassGrid(5, 5)
	got := collect(Melee(g, domain.Pos(2, 2)))
	want := []domain.Position{{X: 2, Y: 3}, {X: 3, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("Melee yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Melee[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMelee_ClipsToBounds(t *testing.T) {
	g := grassGrid(5, 5)
	tests := []struct {
		pos  domain.Position
		want int
	}{
		{domain.Pos(0, 0), 2},
		{domain.Pos(4, 4), 2},
		{domain.Pos(0, 2), 3},
		{domain.Pos(2, 2), 4},
	}
	for _, tt := range tests {
		got := collect(Melee(g, tt.pos))
		if len(got) != tt.want {
			t.Errorf("Melee(%v) yielded %d tiles, want %d", tt.pos, len(got), tt.want)
		}
		for _, p := range got {
			if !g.InBounds(p) || !tt.pos.IsOrthogonalNeighbor(p) {
				t.Errorf("Melee(%v) yielded invalid tile %v", tt.pos, p)
			}
		}
	}
}

func TestRanged_MatchesBruteForce(t *testing.T) {
	g := grassGrid(9, 7)
	origins := []domain.Position{{X: 0, Y: 0}, {X: 4, Y: 3}, {X: 8, Y: 6}, {X: 1, Y: 5}}
	for _, origin := range origins {
		for minR := 0; minR <= 5; minR++ {
			for maxR := minR; maxR <= 6; maxR++ {
				got := collect(Ranged(g, origin, minR, maxR))
				set := asSet(got)
				if len(set) != len(got) {
					t.Errorf("Ranged(%v, %d, %d) yielded duplicates: %v", origin, minR, maxR, got)
				}
				want := bruteForce(g, origin, minR, maxR)
				if len(set) != len(want) {
					t.Errorf("Ranged(%v, %d, %d) yielded %d tiles, want %d", origin, minR, maxR, len(set), len(want))
					continue
				}
				for p := range want {
					if !set[p] {
						t.Errorf("Ranged(%v, %d, %d) missing %v", origin, minR, maxR, p)
					}
				}
			}
		}
	}
}

func TestRanged_CornerScenario(t *testing.T) {
	g := grassGrid(10, 10)
	got := collect(Ranged(g, domain.Pos(0, 0), 2, 3))
	// distance 2: (0,2) (1,1) (2,0); distance 3: (0,3) (1,2) (2,1) (3,0)
	if len(got) != 7 {
		t.Fatalf("Ranged(2,3) at corner yielded %v", got)
	}
	for _, p := range got {
		d := domain.Pos(0, 0).ManhattanTo(p)
		if d < 2 || d > 3 {
			t.Errorf("tile %v at distance %d", p, d)
		}
	}
}

func TestRanged_Degenerate(t *testing.T) {
	g := grassGrid(5, 5)
	if got := collect(Ranged(g, domain.Pos(2, 2), 3, 2)); len(got) != 0 {
		t.Errorf("min > max must be empty, got %v", got)
	}
	got := collect(Ranged(g, domain.Pos(2, 2), 0, 0))
	if len(got) != 1 || got[0] != domain.Pos(2, 2) {
		t.Errorf("Ranged(0,0) = %v, want only the origin", got)
	}
}

func TestRanged_Restartable(t *testing.T) {
	g := grassGrid(6, 6)
	seq := Ranged(g, domain.Pos(3, 3), 1, 2)
	first := collect(seq)
	second := collect(seq)
	if len(first) != len(second) || len(first) == 0 {
		t.Fatalf("sequence not restartable: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("restart diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}

	// Early break must not poison the next run.
	for range seq {
		break
	}
	if again := collect(seq); len(again) != len(first) {
		t.Errorf("after break: %d tiles, want %d", len(again), len(first))
	}
}

func TestSpear_StopsAtFirstEnemy(t *testing.T) {
	g := grassGrid(7, 7)
	spear := newKind("spear", domain.SpearRange(3), 3)
	attacker := place(g, spear, domain.FactionRed, domain.Pos(3, 3))
	place(g, spear, domain.FactionBlue, domain.Pos(3, 5)) // north ray, 2 steps
	place(g, spear, domain.FactionBlue, domain.Pos(3, 6)) // hidden behind it
	place(g, spear, domain.FactionRed, domain.Pos(4, 3))  // ally east, thrust passes
	place(g, spear, domain.FactionBlue, domain.Pos(6, 3)) // behind the ally, 3 steps

	set := asSet(collect(Spear(g, attacker, domain.Pos(3, 3), 3)))

	if !set[domain.Pos(3, 5)] {
		t.Error("blocking enemy tile must be yielded")
	}
	if set[domain.Pos(3, 6)] {
		t.Error("ray must stop after the first enemy")
	}
	for _, p := range []domain.Position{{X: 4, Y: 3}, {X: 5, Y: 3}, {X: 6, Y: 3}} {
		if !set[p] {
			t.Errorf("ray through ally should reach %v", p)
		}
	}
	// south and west rays are clear: 3 tiles each
	for _, p := range []domain.Position{{X: 3, Y: 0}, {X: 0, Y: 3}} {
		if !set[p] {
			t.Errorf("clear ray should reach %v", p)
		}
	}
	if len(set) != 2+3+3+3 {
		t.Errorf("Spear yielded %d tiles, want 11", len(set))
	}
}

func TestSpear_ClipsAtEdge(t *testing.T) {
	g := grassGrid(3, 3)
	attacker := place(g, newKind("spear", domain.SpearRange(5), 3), domain.FactionRed, domain.Pos(0, 0))
	got := collect(Spear(g, attacker, domain.Pos(0, 0), 5))
	if len(got) != 4 {
		t.Errorf("Spear from corner = %v, want 4 tiles", got)
	}
}

func TestFindAttackable_FiltersTargets(t *testing.T) {
	g := grassGrid(5, 5)
	melee := newKind("sword", domain.MeleeRange(), 3)
	attacker := place(g, melee, domain.FactionRed, domain.Pos(2, 2))
	enemy := place(g, melee, domain.FactionBlue, domain.Pos(2, 3))
	place(g, melee, domain.FactionRed, domain.Pos(1, 2))
	place(g, melee, domain.FactionBlue, domain.Pos(0, 0)) // out of reach

	var found []*domain.Unit
	for p, u := range FindAttackable(g, attacker, PreMoveRange(g, attacker, domain.Pos(2, 2))) {
		if p != domain.Pos(2, 3) {
			t.Errorf("unexpected target tile %v", p)
		}
		found = append(found, u)
	}
	if len(found) != 1 || found[0] != enemy {
		t.Errorf("FindAttackable = %v, want only the adjacent enemy", found)
	}
}

func TestPostMoveRange_RangedOnlyFromOrigin(t *testing.T) {
	g := grassGrid(8, 8)
	archer := place(g, newKind("bow", domain.RangedRange(2, 3), 3), domain.FactionRed, domain.Pos(2, 2))

	if got := collect(PostMoveRange(g, archer, domain.Pos(2, 2), domain.Pos(3, 2))); len(got) != 0 {
		t.Errorf("ranged unit after moving must have no range, got %v", got)
	}
	stay := collect(PostMoveRange(g, archer, domain.Pos(2, 2), domain.Pos(2, 2)))
	pre := collect(PreMoveRange(g, archer, domain.Pos(2, 2)))
	if len(stay) == 0 || len(stay) != len(pre) {
		t.Errorf("staying put keeps the pre-move range: %d vs %d", len(stay), len(pre))
	}

	knight := place(g, newKind("sword", domain.MeleeRange(), 3), domain.FactionRed, domain.Pos(6, 6))
	moved := asSet(collect(PostMoveRange(g, knight, domain.Pos(6, 6), domain.Pos(5, 5))))
	if !moved[domain.Pos(5, 6)] || !moved[domain.Pos(6, 5)] || len(moved) != 4 {
		t.Errorf("melee range must re-root at destination, got %v", moved)
	}
}
