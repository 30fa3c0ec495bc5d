package domain

import (
	"math"

	"github.com/google/uuid"
)

// MaxHealth is the health of a fresh unit. Damage formulas scale by health/MaxHealth.
const MaxHealth = 10

// Unit is a single piece on the board.
type Unit struct {
	ID      uuid.UUID
	Kind    *UnitKind
	Faction Faction
	Health  int
	Spent   bool
}

// NewUnit spawns a full-health unit of the given kind.
func NewUnit(kind *UnitKind, faction Faction) *Unit {
	if kind == nil {
		panic("unit spawned without a kind")
	}
	return &Unit{
		ID:      uuid.New(),
		Kind:    kind,
		Faction: faction,
		Health:  MaxHealth,
	}
}

// HealthRatio is health/10 as used by the damage and capture formulas.
func (u *Unit) HealthRatio() float64 {
	return float64(u.Health) / MaxHealth
}

// IsDestroyed reports whether health reached zero.
func (u *Unit) IsDestroyed() bool {
	return u.Health <= 0
}

// IsAlly reports whether other fights on the same side.
func (u *Unit) IsAlly(other *Unit) bool {
	return u.Faction == other.Faction
}

// CanAttack reports whether other is a valid target.
func (u *Unit) CanAttack(other *Unit) bool {
	return u != other && !u.IsAlly(other)
}

// CanPassThrough reports whether the unit may walk across a tile held by other.
func (u *Unit) CanPassThrough(other *Unit) bool {
	return u.IsAlly(other)
}

// CanSpearThrough reports whether a spear thrust continues past other.
func (u *Unit) CanSpearThrough(other *Unit) bool {
	return u.IsAlly(other)
}

// ReceiveDamage subtracts the rounded amount and reports whether the unit is destroyed.
// Health never goes below zero.
func (u *Unit) ReceiveDamage(amount float64) bool {
	dmg := max(0, int(math.Round(amount)))
	u.Health = max(0, u.Health-dmg)
	return u.Health == 0
}

// CaptureStrength is the progress one capture action adds: floor(capacity * health/10).
func (u *Unit) CaptureStrength() int {
	return u.Kind.Capture * u.Health / MaxHealth
}
