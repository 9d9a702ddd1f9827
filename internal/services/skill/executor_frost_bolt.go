package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// frostBoltExecutor is a single-target magic attack that slows on a hit
type frostBoltExecutor struct {
	service *service
}

func newFrostBoltExecutor(svc *service) Executor {
	return &frostBoltExecutor{service: svc}
}

func (e *frostBoltExecutor) Key() string {
	return skills.ExecFrostBolt
}

func (e *frostBoltExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	target := in.Target

	outcome, err := combat.ResolveMagicAttack(in.Roller, e.service.conditions, in.Caster, target, def.DamageFlat)
	if err != nil {
		return nil, err
	}

	if !outcome.Hit {
		return &Result{Message: fmt.Sprintf("%s shrugs off the frost bolt", target.Name)}, nil
	}

	result := &Result{
		Damage:  outcome.HPLost,
		Message: fmt.Sprintf("frost bolt strikes %s for %d damage", target.Name, outcome.Damage),
	}
	if outcome.Defeated {
		result.TargetsDefeated = []string{target.ID}
		return result, nil
	}

	target.Conditions = conditions.Apply(e.service.conditions, target.Conditions, def.Condition)
	result.ConditionApplied = def.Condition
	return result, nil
}
