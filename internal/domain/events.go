package domain

import "fmt"

// EventType identifies an observable match transition.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTurnStarted
	EventFactionDefeated
	EventFactionWins
	EventTileCaptured
)

var eventTypeToString = map[EventType]string{
	EventTurnStarted:     "TURN_STARTED",
	EventFactionDefeated: "FACTION_DEFEATED",
	EventFactionWins:     "FACTION_WINS",
	EventTileCaptured:    "TILE_CAPTURED",
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event is emitted by the core for the orchestrator to react to.
// Pos is only set for tile events.
type Event struct {
	Type    EventType
	Faction Faction
	Pos     Position
}

func (e Event) String() string {
	if e.Type == EventTileCaptured {
		return fmt.Sprintf("%s(%s at %s)", e.Type, e.Faction, e.Pos)
	}
	return fmt.Sprintf("%s(%s)", e.Type, e.Faction)
}
