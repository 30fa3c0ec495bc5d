package engine

import (
	"time"

	"tactics-core/internal/domain"
)

// DefaultMaxActions is the per-turn action budget when none is configured.
const DefaultMaxActions = 3

// Config holds match parameters.
type Config struct {
	// Seed drives every random choice of the match (path shapes only).
	Seed int64
	// MaxActions is the number of units a faction may spend per turn.
	MaxActions int
	// Factions is the turn rotation. Empty means every faction with units,
	// in declaration order.
	Factions []domain.Faction
}

// NewConfig returns defaults with a random seed.
func NewConfig() Config {
	return Config{
		Seed:       time.Now().UnixNano(),
		MaxActions: DefaultMaxActions,
	}
}
