package engine

import (
	"fmt"
	"iter"
	"math/rand"
	"slices"

	"tactics-core/internal/domain"
	"tactics-core/internal/systems"
	"tactics-core/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Match is one running game. It owns the grid and the turn state; everything
// runs on the caller's goroutine and must not be shared.
type Match struct {
	ID    uuid.UUID
	Grid  *domain.Grid
	Turns *TurnInfo
	Rng   *rand.Rand
	Seed  int64
	Logs  []LogEntry

	// Turn counts EndTurn calls since the match started.
	Turn int

	acting *pendingMove
	events []domain.Event
}

// pendingMove is a unit that has moved but not yet attacked, captured or
// waited. While it is set no other unit may act.
type pendingMove struct {
	unit   *domain.Unit
	origin domain.Position
	at     domain.Position
}

// NewMatch wraps a freshly built grid. Without an explicit rotation every
// faction that has units plays, in declaration order.
func NewMatch(g *domain.Grid, cfg Config) *Match {
	factions := cfg.Factions
	if len(factions) == 0 {
		for f := domain.FactionRed; f <= domain.FactionYellow; f++ {
			if g.CountUnits(f) > 0 {
				factions = append(factions, f)
			}
		}
	}
	maxActions := cfg.MaxActions
	if maxActions <= 0 {
		maxActions = DefaultMaxActions
	}

	m := &Match{
		ID:    uuid.New(),
		Grid:  g,
		Turns: NewTurnInfo(factions, maxActions),
		Rng:   rand.New(rand.NewSource(cfg.Seed)),
		Seed:  cfg.Seed,
	}

	logger.Log.WithFields(logrus.Fields{
		"match":       m.ID,
		"seed":        cfg.Seed,
		"factions":    factions,
		"max_actions": maxActions,
	}).Info("Match created")

	m.emit(domain.Event{Type: domain.EventTurnStarted, Faction: m.Turns.CurrentFaction()})
	return m
}

// activeUnit returns the unit at pos, or nil when it may not act now.
// An empty tile is a caller bug.
func (m *Match) activeUnit(pos domain.Position) *domain.Unit {
	unit := m.Grid.Unit(pos)
	if unit == nil {
		panic(fmt.Sprintf("no unit at %v", pos))
	}
	if _, over := m.Winner(); over || !m.Turns.IsActive(unit) {
		return nil
	}
	if m.acting != nil && m.acting.unit != unit {
		return nil
	}
	return unit
}

// Select computes the movement options of the unit at pos. Nil when the unit
// cannot move (other faction's turn, spent, no actions left, match over, or a
// move already made this action).
func (m *Match) Select(pos domain.Position) *systems.PathFinder {
	unit := m.activeUnit(pos)
	if unit == nil || m.acting != nil {
		return nil
	}
	return systems.NewPathFinder(m.Grid, unit, pos)
}

// Move walks the unit at from to to and returns the walked path, origin first.
// Returns false when the destination is unreachable or occupied, or when the
// unit already moved. Moving does not spend the unit: it must still attack,
// capture or wait, or the move can be undone.
func (m *Match) Move(from, to domain.Position) ([]domain.Position, bool) {
	pf := m.Select(from)
	if pf == nil || !pf.CanMoveTo(to) {
		return nil, false
	}
	path := pf.Path(to, m.Rng)
	m.Grid.MoveUnit(from, to)
	m.acting = &pendingMove{unit: m.Grid.Unit(to), origin: from, at: to}

	logger.Log.WithFields(logrus.Fields{
		"match":  m.ID,
		"action": domain.ActionMove,
		"from":   from,
		"to":     to,
		"steps":  len(path) - 1,
	}).Debug("Unit moved")
	return path, true
}

// Pending reports the move awaiting an action, if any.
func (m *Match) Pending() (origin, at domain.Position, ok bool) {
	if m.acting == nil {
		return domain.Position{}, domain.Position{}, false
	}
	return m.acting.origin, m.acting.at, true
}

// Undo puts the unit of the pending move back on its origin (a cancelled
// action menu). False when nothing has moved.
func (m *Match) Undo() bool {
	if m.acting == nil {
		return false
	}
	m.Grid.MoveUnit(m.acting.at, m.acting.origin)
	logger.Log.WithFields(logrus.Fields{
		"match":  m.ID,
		"action": domain.ActionUndo,
		"from":   m.acting.at,
		"to":     m.acting.origin,
	}).Debug("Move undone")
	m.acting = nil
	return true
}

// origin is where the unit now at pos began its action.
func (m *Match) origin(unit *domain.Unit, pos domain.Position) domain.Position {
	if m.acting != nil && m.acting.unit == unit {
		return m.acting.origin
	}
	return pos
}

// Targets lists the enemies the unit at pos can strike. Ranged units that
// moved this action get nothing.
func (m *Match) Targets(pos domain.Position) iter.Seq2[domain.Position, *domain.Unit] {
	unit := m.activeUnit(pos)
	if unit == nil {
		return func(func(domain.Position, *domain.Unit) bool) {}
	}
	return systems.FindAttackable(m.Grid, unit, systems.PostMoveRange(m.Grid, unit, m.origin(unit, pos), pos))
}

// Attack resolves a strike of the unit at from against target. Returns false
// when the target is not attackable from there; that is an ordinary outcome,
// not an error.
func (m *Match) Attack(from, target domain.Position) (systems.AttackOutcome, bool) {
	valid := false
	for p := range m.Targets(from) {
		if p == target {
			valid = true
			break
		}
	}
	if !valid {
		return systems.AttackOutcome{}, false
	}

	attacker, defender := m.Grid.UnitPair(from, target)
	out := systems.ResolveAttack(m.Grid, from, target)
	m.spend(attacker)

	msg := fmt.Sprintf("%s %s hits %s %s for %.1f.",
		attacker.Faction, attacker.Kind.Name, defender.Faction, defender.Kind.Name, out.Attack.Damage)
	if out.Attack.Destroyed {
		msg += " Target destroyed."
	}
	if r := out.Retaliation; r != nil {
		msg += fmt.Sprintf(" Retaliation for %.1f.", r.Damage)
		if r.Destroyed {
			msg += " Attacker destroyed."
		}
	}
	m.AddLog(msg, LogCombat)

	m.handleEvents(out.Events)
	return out, true
}

// Capture lets the unit at pos work on its tile. False when it cannot capture there.
func (m *Match) Capture(pos domain.Position) (systems.CaptureOutcome, bool) {
	unit := m.activeUnit(pos)
	if unit == nil || !systems.CanCapture(m.Grid, pos) {
		return systems.CaptureOutcome{}, false
	}
	out := systems.ResolveCapture(m.Grid, pos)
	m.spend(unit)

	if out.Captured {
		m.AddLog(fmt.Sprintf("%s captured %s at %v.", unit.Faction, m.Grid.Terrain(pos).Name, pos), LogCapture)
	} else {
		m.AddLog(fmt.Sprintf("%s capture at %v: %d/%d.", unit.Faction, pos, out.Progress, m.Grid.Terrain(pos).Capture), LogCapture)
	}
	m.handleEvents(out.Events)
	return out, true
}

// Wait ends the unit's action without doing anything. False when it cannot act.
func (m *Match) Wait(pos domain.Position) bool {
	unit := m.activeUnit(pos)
	if unit == nil {
		return false
	}
	m.spend(unit)
	return true
}

// EndTurn refreshes all units and hands the turn to the next faction.
// A pending move stays where it is.
func (m *Match) EndTurn() domain.Faction {
	m.acting = nil
	m.Grid.ResetSpent()
	next := m.Turns.EndTurn()
	m.Turn++
	m.AddLog(fmt.Sprintf("%s to move.", next), LogTurn)
	m.emit(domain.Event{Type: domain.EventTurnStarted, Faction: next})
	return next
}

// Winner returns the last faction standing once the match is over.
func (m *Match) Winner() (domain.Faction, bool) {
	return m.Turns.Winner()
}

// Events drains the events produced since the last call.
func (m *Match) Events() []domain.Event {
	out := m.events
	m.events = nil
	return out
}

func (m *Match) spend(unit *domain.Unit) {
	m.acting = nil
	unit.Spent = true
	m.Turns.SpendAction()
}

func (m *Match) emit(e domain.Event) {
	m.events = append(m.events, e)
}

// handleEvents forwards resolver events and applies their turn consequences.
func (m *Match) handleEvents(events []domain.Event) {
	for _, e := range events {
		m.emit(e)
		if e.Type != domain.EventFactionDefeated {
			continue
		}
		if !slices.Contains(m.Turns.Factions(), e.Faction) {
			continue
		}
		m.AddLog(fmt.Sprintf("%s has been defeated.", e.Faction), LogInfo)
		if m.Turns.RemoveFaction(e.Faction) && len(m.Turns.Factions()) > 0 {
			m.Grid.ResetSpent()
			m.emit(domain.Event{Type: domain.EventTurnStarted, Faction: m.Turns.CurrentFaction()})
		}
		if winner, ok := m.Winner(); ok {
			m.AddLog(fmt.Sprintf("%s wins.", winner), LogInfo)
			m.emit(domain.Event{Type: domain.EventFactionWins, Faction: winner})
		}
	}
}
