package systems

import (
	"fmt"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AttackDamage computes the raw damage attacker deals to defender standing on terrain:
//
//	damage * modifier(defender class) * attackerHealth/10 * (1 - defense * defenderHealth/10)
//
// where defense is the terrain bonus plus the defender's own defense. Never negative.
func AttackDamage(attacker, defender *domain.Unit, terrain *domain.Terrain) float64 {
	atk := attacker.Kind.Attack
	defense := terrain.Defense + defender.Kind.Defense.Value
	dmg := atk.Damage *
		atk.Modifier(defender.Kind.Defense.Class) *
		attacker.HealthRatio() *
		(1 - defense*defender.HealthRatio())
	return max(0, dmg)
}

// Strike is one direction of an exchange.
type Strike struct {
	From      domain.Position
	To        domain.Position
	Damage    float64
	HPBefore  int
	HPAfter   int
	Destroyed bool
}

// AttackOutcome describes a resolved attack. Retaliation is nil when the
// defender was destroyed or could not reach the attacker.
type AttackOutcome struct {
	Attack      Strike
	Retaliation *Strike
	Events      []domain.Event
}

// AttackerDestroyed reports whether retaliation killed the attacker.
func (o AttackOutcome) AttackerDestroyed() bool {
	return o.Retaliation != nil && o.Retaliation.Destroyed
}

// ResolveAttack applies an attack from the unit at from on the unit at to.
//
// Both damages are computed before either is applied, so retaliation ignores
// the damage the defender just took. The defender strikes back only if it
// survives and from lies in its pre-move range. Destroyed units leave the grid;
// a faction losing its last unit produces EventFactionDefeated.
func ResolveAttack(g *domain.Grid, from, to domain.Position) AttackOutcome {
	attackerTile, defenderTile := g.TilePair(from, to)
	attacker, defender := attackerTile.Unit, defenderTile.Unit
	if attacker == nil {
		panic(fmt.Sprintf("no attacking unit at %v", from))
	}
	if defender == nil {
		panic(fmt.Sprintf("no unit to attack at %v", to))
	}
	if !attacker.CanAttack(defender) {
		panic(fmt.Sprintf("unit at %v cannot attack unit at %v", from, to))
	}

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_kind": attacker.Kind.Name,
		"attacker_pos":  from,
		"target_id":     defender.ID,
		"target_kind":   defender.Kind.Name,
		"target_pos":    to,
	})

	dmg := AttackDamage(attacker, defender, defenderTile.Terrain)
	retaliation := AttackDamage(defender, attacker, attackerTile.Terrain)

	out := AttackOutcome{}
	out.Attack = applyStrike(from, to, defender, dmg)

	if !out.Attack.Destroyed && InRange(PreMoveRange(g, defender, to), from) {
		strike := applyStrike(to, from, attacker, retaliation)
		out.Retaliation = &strike
	}

	combatLogger.WithFields(logrus.Fields{
		"damage":        out.Attack.Damage,
		"hp_before":     out.Attack.HPBefore,
		"hp_after":      out.Attack.HPAfter,
		"target_died":   out.Attack.Destroyed,
		"retaliated":    out.Retaliation != nil,
		"attacker_died": out.AttackerDestroyed(),
	}).Info("Attack resolved.")

	if out.Attack.Destroyed {
		out.Events = append(out.Events, DestroyUnit(g, to)...)
	}
	if out.AttackerDestroyed() {
		out.Events = append(out.Events, DestroyUnit(g, from)...)
	}
	return out
}

func applyStrike(from, to domain.Position, target *domain.Unit, dmg float64) Strike {
	s := Strike{From: from, To: to, Damage: dmg, HPBefore: target.Health}
	s.Destroyed = target.ReceiveDamage(dmg)
	s.HPAfter = target.Health
	return s
}

// DestroyUnit removes the unit at pos and reports its faction as defeated if
// that was its last unit on the board.
func DestroyUnit(g *domain.Grid, pos domain.Position) []domain.Event {
	unit := g.RemoveUnit(pos)
	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"unit_id":   unit.ID,
		"faction":   unit.Faction,
		"pos":       pos,
	}).Info("Unit destroyed.")

	if g.CountUnits(unit.Faction) > 0 {
		return nil
	}
	logger.Log.WithField("faction", unit.Faction).Info("Faction defeated.")
	return []domain.Event{{Type: domain.EventFactionDefeated, Faction: unit.Faction}}
}
