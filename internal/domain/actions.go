package domain

import "strings"

// ActionType is a player action the match session understands.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionCapture
	ActionWait
	ActionEndTurn
	ActionUndo
)

var actionStringToType = map[string]ActionType{
	"MOVE":     ActionMove,
	"ATTACK":   ActionAttack,
	"CAPTURE":  ActionCapture,
	"WAIT":     ActionWait,
	"END_TURN": ActionEndTurn,
	"UNDO":     ActionUndo,
}

var actionTypeToString = map[ActionType]string{
	ActionMove:    "MOVE",
	ActionAttack:  "ATTACK",
	ActionCapture: "CAPTURE",
	ActionWait:    "WAIT",
	ActionEndTurn: "END_TURN",
	ActionUndo:    "UNDO",
}

// ParseAction converts a command name to ActionType (case-insensitive).
func ParseAction(s string) ActionType {
	if val, ok := actionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// SpendsUnit reports whether the action finishes the acting unit for the turn.
func (a ActionType) SpendsUnit() bool {
	switch a {
	case ActionAttack, ActionCapture, ActionWait:
		return true
	}
	return false
}
