package catalog

import (
	"errors"
	"strings"
	"testing"

	"tactics-core/internal/domain"
)

const validLevel = `
name: crossing
schema: v1
default_terrain: default
layers:
  terrain:
    forest: [[2, 1, 0], [3, 1, 0]]
    city: [[5, 3, 1]]
  units:
    soldier: [[1, 1, 1], [4, 2, 2]]
    archer: [[1, 3, 1]]
`

func TestParseLevel_Bounds(t *testing.T) {
	lvl, err := ParseLevel([]byte(validLevel))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.Min != domain.Pos(1, 1) || lvl.Max != domain.Pos(5, 3) {
		t.Errorf("bounds = %v..%v, want (1,1)..(5,3)", lvl.Min, lvl.Max)
	}
	if w, h := lvl.Size(); w != 5 || h != 3 {
		t.Errorf("size = %dx%d, want 5x3", w, h)
	}
	if p := lvl.ToGrid(5, 3); p != domain.Pos(4, 2) {
		t.Errorf("ToGrid(5,3) = %v", p)
	}
}

func TestBuildGrid(t *testing.T) {
	cat := mustCatalog(t)
	lvl, err := ParseLevel([]byte(validLevel))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	g, err := BuildGrid(lvl, cat)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	if w, h := g.Size(); w != 5 || h != 3 {
		t.Fatalf("grid size = %dx%d", w, h)
	}
	if got := g.Terrain(lvl.ToGrid(2, 1)).Name; got != "forest" {
		t.Errorf("(2,1) terrain = %q, want forest", got)
	}
	if got := g.Terrain(lvl.ToGrid(1, 2)).Name; got != "default" {
		t.Errorf("unlisted tile terrain = %q, want default", got)
	}
	city := g.Tile(lvl.ToGrid(5, 3))
	if city.Terrain.Name != "city" || city.Owner != domain.FactionRed {
		t.Errorf("city tile = %+v", city)
	}

	if g.CountUnits(domain.FactionRed) != 2 || g.CountUnits(domain.FactionBlue) != 1 {
		t.Errorf("unit counts red=%d blue=%d", g.CountUnits(domain.FactionRed), g.CountUnits(domain.FactionBlue))
	}
	archer := g.Unit(lvl.ToGrid(1, 3))
	if archer == nil || archer.Kind != cat.Kind("archer") || archer.Health != domain.MaxHealth {
		t.Errorf("archer = %+v", archer)
	}
}

func TestLevel_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		wantMsg string
	}{
		{"unknown terrain", "city: [[5, 3, 1]]", "lava: [[5, 3, 1]]", `unknown terrain "lava"`},
		{"unknown role", "archer: [[1, 3, 1]]", "dragon: [[1, 3, 1]]", `unknown role "dragon"`},
		{"unit without faction", "archer: [[1, 3, 1]]", "archer: [[1, 3, 0]]", "without a faction"},
		{"unknown faction code", "archer: [[1, 3, 1]]", "archer: [[1, 3, 7]]", "unknown faction code 7"},
		{"duplicate unit", "archer: [[1, 3, 1]]", "archer: [[1, 1, 2]]", "two units at (1,1)"},
		{"duplicate terrain", "city: [[5, 3, 1]]", "city: [[2, 1, 0]]", "terrain at (2,1)"},
		{"unknown default", "default_terrain: default", "default_terrain: sea", `default terrain "sea"`},
	}

	cat := mustCatalog(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(validLevel, tt.old) {
				t.Fatalf("fixture does not contain %q", tt.old)
			}
			lvl, err := ParseLevel([]byte(strings.Replace(validLevel, tt.old, tt.new, 1)))
			if err == nil {
				_, err = BuildGrid(lvl, cat)
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseLevel_TooLarge(t *testing.T) {
	tests := []struct {
		name    string
		points  string
		wantMsg string
	}{
		{"wide", "[[0, 0, 1], [1024, 0, 2]]", "1025x1 tiles"},
		{"tall", "[[0, -600, 1], [0, 600, 2]]", "1x1201 tiles"},
		{"far apart", "[[0, 0, 1], [100000, 100000, 2]]", "100001x100001 tiles"},
		{"max int", "[[0, 0, 1], [9223372036854775807, 0, 2]]", "out of range"},
		{"min int", "[[-9223372036854775808, 0, 1], [0, 0, 2]]", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "name: huge\nschema: v1\nlayers:\n  units:\n    soldier: " + tt.points + "\n"
			_, err := ParseLevel([]byte(doc))
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("got %v, want ErrInvalidLevel", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}

	doc := "name: edge\nschema: v1\nlayers:\n  units:\n    soldier: [[0, 0, 1], [1023, 1023, 2]]\n"
	lvl, err := ParseLevel([]byte(doc))
	if err != nil {
		t.Fatalf("a %d-wide level must load: %v", MaxLevelSide, err)
	}
	if w, h := lvl.Size(); w != MaxLevelSide || h != MaxLevelSide {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestParseLevel_MissingUnits(t *testing.T) {
	doc := "name: empty\nschema: v1\nlayers:\n  terrain:\n    forest: [[0, 0, 0]]\n"
	if _, err := ParseLevel([]byte(doc)); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("got %v, want ErrInvalidLevel", err)
	}
}

func TestParseLevel_DefaultTerrainFallback(t *testing.T) {
	doc := strings.Replace(validLevel, "default_terrain: default\n", "", 1)
	lvl, err := ParseLevel([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if lvl.DefaultTerrain != "default" {
		t.Errorf("DefaultTerrain = %q", lvl.DefaultTerrain)
	}
}
