package engine

import (
	"errors"
	"fmt"

	"tactics-core/internal/domain"
)

// Command is an orchestrator request, already mapped from input events.
// From is where the unit stands now and To the destination or target tile.
// Where the unit began its action is tracked by the match, not the caller.
type Command struct {
	Action domain.ActionType
	From   domain.Position
	To     domain.Position
}

// Result tells the orchestrator whether the command did anything. OK == false
// is an ordinary refusal (unreachable tile, no target), never an error.
type Result struct {
	OK     bool
	Path   []domain.Position
	Events []domain.Event
}

// HandlerFunc executes one kind of command against the match.
type HandlerFunc func(m *Match, cmd Command) Result

var handlers = map[domain.ActionType]HandlerFunc{
	domain.ActionMove: func(m *Match, cmd Command) Result {
		path, ok := m.Move(cmd.From, cmd.To)
		return Result{OK: ok, Path: path}
	},
	domain.ActionAttack: func(m *Match, cmd Command) Result {
		_, ok := m.Attack(cmd.From, cmd.To)
		return Result{OK: ok}
	},
	domain.ActionCapture: func(m *Match, cmd Command) Result {
		_, ok := m.Capture(cmd.From)
		return Result{OK: ok}
	},
	domain.ActionWait: func(m *Match, cmd Command) Result {
		return Result{OK: m.Wait(cmd.From)}
	},
	domain.ActionUndo: func(m *Match, _ Command) Result {
		return Result{OK: m.Undo()}
	},
	domain.ActionEndTurn: func(m *Match, _ Command) Result {
		m.EndTurn()
		return Result{OK: true}
	},
}

// needsUnit reports whether the command acts through the unit at From.
func (c Command) needsUnit() bool {
	return c.Action != domain.ActionEndTurn && c.Action != domain.ActionUndo
}

// Validate rejects commands that cannot be meaningful for any board state.
func (c Command) Validate(g *domain.Grid) error {
	if _, ok := handlers[c.Action]; !ok {
		return fmt.Errorf("unknown action %v", c.Action)
	}
	if !c.needsUnit() {
		return nil
	}
	for _, p := range []domain.Position{c.From, c.To} {
		if !g.InBounds(p) {
			return fmt.Errorf("position %v is off the board", p)
		}
	}
	if c.Action == domain.ActionAttack && c.From == c.To {
		return errors.New("a unit cannot attack itself")
	}
	return nil
}

// Execute validates and dispatches a command. Events produced by it are
// drained into the result.
func (m *Match) Execute(cmd Command) (Result, error) {
	if err := cmd.Validate(m.Grid); err != nil {
		return Result{}, fmt.Errorf("invalid %v command: %w", cmd.Action, err)
	}
	if cmd.needsUnit() && m.Grid.Unit(cmd.From) == nil {
		return Result{}, fmt.Errorf("invalid %v command: no unit at %v", cmd.Action, cmd.From)
	}
	res := handlers[cmd.Action](m, cmd)
	res.Events = m.Events()
	return res, nil
}
