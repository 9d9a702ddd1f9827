package skill

import (
	"fmt"
	"strings"

	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// cleaveExecutor rolls one attack against every adjacent living enemy
type cleaveExecutor struct {
	service *service
}

func newCleaveExecutor(svc *service) Executor {
	return &cleaveExecutor{service: svc}
}

func (e *cleaveExecutor) Key() string {
	return skills.ExecCleave
}

func (e *cleaveExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	caster := in.Caster
	am := conditions.ScanForAction(e.service.conditions, caster.Conditions, conditions.ActionAttack).Modifiers

	var targets []*combat.Unit
	var defenders []dice.Defender
	for _, u := range in.Units {
		if u.ID == caster.ID || !u.Alive || u.OwnerID == caster.OwnerID {
			continue
		}
		if combat.KingMoveDistance(caster.Position, u.Position) > 1 {
			continue
		}
		dm := conditions.ScanForAction(e.service.conditions, u.Conditions, conditions.ActionDodge).Modifiers
		targets = append(targets, u)
		defenders = append(defenders, dice.Defender{
			ID:        u.ID,
			Dice:      atLeastOne(u.Stats.Speed + dm.Speed),
			Advantage: dm.DefenseAdvantage,
		})
	}

	if len(targets) == 0 {
		return reject(RejectNoTarget, "no enemies in reach to cleave"), nil
	}

	attackDice := atLeastOne(caster.Stats.Combat + am.Combat)
	mt, err := dice.RollMultiTargetAttack(in.Roller, attackDice, am.AttackAdvantage, defenders)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var hits []string
	for i, outcome := range mt.Targets {
		target := targets[i]
		if !outcome.Hit {
			continue
		}

		raw := dice.DamageFromSuccesses(outcome.Margin, caster.Stats.Combat+am.Combat, def.DamageFlat+am.FlatDamage)
		raw += raw * am.PercentDamage / 100

		dm := conditions.ScanForAction(e.service.conditions, target.Conditions, conditions.ActionDodge).Modifiers
		damage := raw - dice.DefenseReduction(outcome.Defense.Successes, target.Stats.Resistance+dm.Resistance) - (target.Armor + dm.Armor)
		if damage < 0 {
			damage = 0
		}

		result.Damage += target.ApplyPhysicalDamage(damage)
		hits = append(hits, fmt.Sprintf("%s (%d)", target.Name, damage))
		if !target.Alive {
			result.TargetsDefeated = append(result.TargetsDefeated, target.ID)
		}
	}

	if len(hits) == 0 {
		result.Message = fmt.Sprintf("%s's cleave finds no purchase", caster.Name)
	} else {
		result.Message = fmt.Sprintf("%s cleaves through %s", caster.Name, strings.Join(hits, ", "))
	}
	return result, nil
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
