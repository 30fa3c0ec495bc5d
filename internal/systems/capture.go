package systems

import (
	"fmt"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CaptureOutcome reports what one capture action did to a tile.
type CaptureOutcome struct {
	Applied  bool // false when the unit or tile does not allow capturing
	Added    int
	Progress int // accumulated progress after the action (0 once captured)
	Captured bool
	Events   []domain.Event
}

// CanCapture reports whether the unit at pos can make capture progress there.
func CanCapture(g *domain.Grid, pos domain.Position) bool {
	tile := g.Tile(pos)
	unit := tile.Unit
	return unit != nil &&
		unit.Kind.Capture > 0 &&
		tile.CanBeCaptured() &&
		tile.Owner != unit.Faction
}

// ResolveCapture lets the unit at pos work on capturing its tile.
//
// Progress floor(capacity * health/10) accumulates across turns while the same
// faction keeps capturing; another faction starting restarts it from zero.
// Ownership flips once progress reaches the terrain threshold, then progress resets.
func ResolveCapture(g *domain.Grid, pos domain.Position) CaptureOutcome {
	tile := g.Tile(pos)
	unit := tile.Unit
	if unit == nil {
		panic(fmt.Sprintf("no unit to capture with at %v", pos))
	}
	if !CanCapture(g, pos) {
		return CaptureOutcome{Progress: tile.Capture.Progress}
	}

	if tile.Capture.Faction != unit.Faction {
		tile.Capture = domain.CaptureState{Faction: unit.Faction}
	}
	added := unit.CaptureStrength()
	tile.Capture.Progress += added

	out := CaptureOutcome{Applied: true, Added: added, Progress: tile.Capture.Progress}
	captureLogger := logger.Log.WithFields(logrus.Fields{
		"component": "capture_system",
		"pos":       pos,
		"faction":   unit.Faction,
		"added":     added,
		"progress":  tile.Capture.Progress,
		"threshold": tile.Terrain.Capture,
	})

	if tile.Capture.Progress >= tile.Terrain.Capture {
		previous := tile.Owner
		tile.Owner = unit.Faction
		tile.Capture = domain.CaptureState{}
		out.Progress = 0
		out.Captured = true
		out.Events = append(out.Events, domain.Event{Type: domain.EventTileCaptured, Faction: unit.Faction, Pos: pos})
		captureLogger.WithField("previous_owner", previous).Info("Tile captured.")
		return out
	}

	captureLogger.Debug("Capture progressed.")
	return out
}
