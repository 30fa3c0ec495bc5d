package engine

import (
	"fmt"
	"slices"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TurnInfo tracks whose turn it is and how many actions are left.
// A faction may appear more than once in the rotation to get extra turns per round.
type TurnInfo struct {
	factions   []domain.Faction
	current    int
	actions    int
	maxActions int
}

// NewTurnInfo starts the rotation at the first faction with a full action budget.
func NewTurnInfo(factions []domain.Faction, maxActions int) *TurnInfo {
	if len(factions) == 0 {
		panic("turn rotation needs at least one faction")
	}
	if maxActions <= 0 {
		panic(fmt.Sprintf("invalid action budget %d", maxActions))
	}
	return &TurnInfo{
		factions:   slices.Clone(factions),
		maxActions: maxActions,
		actions:    maxActions,
	}
}

// CurrentFaction returns the faction whose turn it is.
func (t *TurnInfo) CurrentFaction() domain.Faction {
	if len(t.factions) == 0 {
		panic("no factions left in rotation")
	}
	return t.factions[t.current]
}

// Factions returns a copy of the remaining rotation.
func (t *TurnInfo) Factions() []domain.Faction {
	return slices.Clone(t.factions)
}

func (t *TurnInfo) ActionsLeft() int { return t.actions }

func (t *TurnInfo) MaxActions() int { return t.maxActions }

// IsActive reports whether u may act right now.
func (t *TurnInfo) IsActive(u *domain.Unit) bool {
	return len(t.factions) > 0 &&
		u.Faction == t.CurrentFaction() &&
		t.actions > 0 &&
		!u.Spent
}

// SpendAction consumes one action of the current turn.
func (t *TurnInfo) SpendAction() {
	if t.actions == 0 {
		panic("a unit was spent with no actions left")
	}
	t.actions--
}

// EndTurn passes the turn to the next entry and refills the budget.
func (t *TurnInfo) EndTurn() domain.Faction {
	t.current = (t.current + 1) % len(t.factions)
	t.actions = t.maxActions
	return t.CurrentFaction()
}

// RemoveFaction drops every entry of f from the rotation.
//
// If the current faction survives it keeps the turn (and its remaining
// actions); its index moves down by the removed entries in front of it.
// If the current faction is removed, the turn goes to the first surviving entry
// after it, wrapping around, with a fresh budget. Returns whether the current
// faction changed.
func (t *TurnInfo) RemoveFaction(f domain.Faction) bool {
	if !slices.Contains(t.factions, f) {
		panic(fmt.Sprintf("faction %v is not in rotation", f))
	}
	wasCurrent := t.factions[t.current] == f

	before := 0
	kept := t.factions[:0]
	for i, entry := range t.factions {
		if entry == f {
			continue
		}
		if i < t.current {
			before++
		}
		kept = append(kept, entry)
	}
	t.factions = kept

	switch {
	case len(t.factions) == 0:
		t.current = 0
	case wasCurrent:
		// First survivor at or after the old index takes over.
		t.current = before % len(t.factions)
		t.actions = t.maxActions
	default:
		t.current = before
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "turn_info",
		"removed":   f,
		"remaining": t.factions,
		"current":   t.current,
	}).Info("Faction removed from rotation.")

	return wasCurrent
}

// Winner returns the faction left standing once every entry is the same faction.
func (t *TurnInfo) Winner() (domain.Faction, bool) {
	if len(t.factions) == 0 {
		return domain.FactionNone, false
	}
	first := t.factions[0]
	for _, f := range t.factions[1:] {
		if f != first {
			return domain.FactionNone, false
		}
	}
	return first, true
}
