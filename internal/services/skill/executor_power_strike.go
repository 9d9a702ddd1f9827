package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// powerStrikeExecutor is a single-target melee attack with a flat bonus
type powerStrikeExecutor struct {
	service *service
}

func newPowerStrikeExecutor(svc *service) Executor {
	return &powerStrikeExecutor{service: svc}
}

func (e *powerStrikeExecutor) Key() string {
	return skills.ExecPowerStrike
}

func (e *powerStrikeExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	outcome, err := combat.ResolvePhysicalAttack(in.Roller, e.service.conditions, in.Caster, in.Target, def.DamageFlat)
	if err != nil {
		return nil, err
	}

	if !outcome.Hit {
		return &Result{Message: fmt.Sprintf("%s's %s misses %s", in.Caster.Name, def.Name, in.Target.Name)}, nil
	}

	result := &Result{
		Damage:  outcome.HPLost,
		Message: fmt.Sprintf("%s's %s hits %s for %d damage", in.Caster.Name, def.Name, in.Target.Name, outcome.Damage),
	}
	if outcome.Defeated {
		result.TargetsDefeated = []string{in.Target.ID}
	}
	return result, nil
}
