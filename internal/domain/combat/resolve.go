package combat

import (
	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/conditions"
)

// AttackOutcome is the resolved result of one attack against one defender
type AttackOutcome struct {
	Contest  *dice.ContestResult `json:"contest"`
	Hit      bool                `json:"hit"`
	Damage   int                 `json:"damage"`
	HPLost   int                 `json:"hp_lost"`
	Defeated bool                `json:"defeated"`
}

// ResolvePhysicalAttack runs a contested Combat-vs-Speed roll and applies the
// damage through the defender's physical protection pool. Callers gate on
// condition blocks before calling; this only reads conditions for modifiers.
func ResolvePhysicalAttack(roller dice.Roller, catalog *conditions.Catalog, attacker, defender *Unit, flatBonus int) (*AttackOutcome, error) {
	am := conditions.ScanForAction(catalog, attacker.Conditions, conditions.ActionAttack).Modifiers
	dm := conditions.ScanForAction(catalog, defender.Conditions, conditions.ActionDodge).Modifiers

	attackDice := atLeastOne(attacker.Stats.Combat + am.Combat)
	defenseDice := atLeastOne(defender.Stats.Speed + dm.Speed)

	contest, err := dice.RollContested(roller, attackDice, defenseDice, am.AttackAdvantage, dm.DefenseAdvantage)
	if err != nil {
		return nil, err
	}

	outcome := &AttackOutcome{Contest: contest, Hit: contest.AttackerWins}
	if !contest.AttackerWins {
		return outcome, nil
	}

	raw := dice.DamageFromSuccesses(contest.Margin, attacker.Stats.Combat+am.Combat, flatBonus+am.FlatDamage)
	raw += raw * am.PercentDamage / 100

	reduction := dice.DefenseReduction(contest.Defense.Successes, defender.Stats.Resistance+dm.Resistance)
	damage := raw - reduction - (defender.Armor + dm.Armor)
	if damage < 0 {
		damage = 0
	}

	outcome.Damage = damage
	outcome.HPLost = defender.ApplyPhysicalDamage(damage)
	outcome.Defeated = !defender.Alive
	return outcome, nil
}

// ResolveMagicAttack runs a contested Focus-vs-Will roll and applies the
// damage through the defender's magical protection pool. Armor does not
// reduce magic damage.
func ResolveMagicAttack(roller dice.Roller, catalog *conditions.Catalog, attacker, defender *Unit, flatBonus int) (*AttackOutcome, error) {
	am := conditions.ScanForAction(catalog, attacker.Conditions, conditions.ActionAttack).Modifiers
	dm := conditions.ScanForAction(catalog, defender.Conditions, conditions.ActionDodge).Modifiers

	attackDice := atLeastOne(attacker.Stats.Focus + am.Focus)
	defenseDice := atLeastOne(defender.Stats.Will + dm.Will)

	contest, err := dice.RollContested(roller, attackDice, defenseDice, am.AttackAdvantage, dm.DefenseAdvantage)
	if err != nil {
		return nil, err
	}

	outcome := &AttackOutcome{Contest: contest, Hit: contest.AttackerWins}
	if !contest.AttackerWins {
		return outcome, nil
	}

	raw := dice.DamageFromSuccesses(contest.Margin, attacker.Stats.Focus+am.Focus, flatBonus+am.FlatDamage)
	raw += raw * am.PercentDamage / 100

	damage := raw - dice.DefenseReduction(contest.Defense.Successes, defender.Stats.Will+dm.Will)
	if damage < 0 {
		damage = 0
	}

	outcome.Damage = damage
	outcome.HPLost = defender.ApplyMagicDamage(damage)
	outcome.Defeated = !defender.Alive
	return outcome, nil
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
