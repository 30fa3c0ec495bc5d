package main

import (
	"testing"

	"tactics-core/internal/catalog"
	"tactics-core/internal/engine"
	"tactics-core/pkg/logger"
)

func init() {
	logger.Silence()
}

const cliCatalog = `
defense_classes: [infantry]
terrain:
  default: {defense: 0}
  woods: {defense: 0.25}
  town: {defense: 0.1, capture: 15}
movement_classes:
  foot: {default: 1, woods: 2, town: 1}
roles:
  soldier:
    attack: {damage: 5, range: {kind: melee}, modifiers: {}}
    defense: {defense: 0, class: infantry}
    movement: {movement: 3, class: foot}
    capture: 10
    sprite: {texture: soldier.png}
`

func TestBuildGrid_Generated(t *testing.T) {
	cat, err := catalog.ParseCatalog([]byte(cliCatalog))
	if err != nil {
		t.Fatal(err)
	}

	g, err := buildGrid(generatedPrefix+"7", cat)
	if err != nil {
		t.Fatalf("buildGrid: %v", err)
	}
	m := engine.NewMatch(g, engine.Config{Seed: 7})
	if got := m.Turns.Factions(); len(got) != 2 {
		t.Errorf("generated match factions = %v", got)
	}
	for pos, unit := range g.Units() {
		if r := reachOf(g, unit, pos); r.destinations == 0 {
			t.Errorf("unit at %v has no destinations, the origin always counts", pos)
		}
	}

	if _, err := buildGrid(generatedPrefix+"seven", cat); err == nil {
		t.Error("non-numeric seed must fail")
	}
	if _, err := buildGrid("does/not/exist.yml", cat); err == nil {
		t.Error("missing level file must fail")
	}
}
