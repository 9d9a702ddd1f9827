package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// mendWoundsExecutor rolls the caster's Focus and converts successes to healing
type mendWoundsExecutor struct {
	service *service
}

func newMendWoundsExecutor(svc *service) Executor {
	return &mendWoundsExecutor{service: svc}
}

func (e *mendWoundsExecutor) Key() string {
	return skills.ExecMendWounds
}

func (e *mendWoundsExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	target := in.Target
	if target == nil {
		target = in.Caster
	}

	roll, err := dice.RollTest(in.Roller, atLeastOne(in.Caster.Stats.Focus), 0)
	if err != nil {
		return nil, err
	}

	healed := target.Heal(roll.Successes*2 + 2)
	return &Result{
		Healing: healed,
		Message: fmt.Sprintf("%s mends %s for %d hit points", in.Caster.Name, target.Name, healed),
	}, nil
}
