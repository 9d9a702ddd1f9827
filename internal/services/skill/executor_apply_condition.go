package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// applyConditionExecutor is the shared handler for skills whose whole effect
// is attaching the definition's condition to the target.
type applyConditionExecutor struct {
	service *service
}

func newApplyConditionExecutor(svc *service) Executor {
	return &applyConditionExecutor{service: svc}
}

func (e *applyConditionExecutor) Key() string {
	return skills.ExecApplyCondition
}

func (e *applyConditionExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	target := in.Target
	if target == nil {
		target = in.Caster
	}

	if def.Condition == "" {
		return reject(RejectSkillUnknown, fmt.Sprintf("%s has no condition to apply", def.Name)), nil
	}

	target.Conditions = conditions.Apply(e.service.conditions, target.Conditions, def.Condition)

	condName := string(def.Condition)
	if cdef := e.service.conditions.Get(def.Condition); cdef != nil {
		condName = cdef.Name
	}

	return &Result{
		ConditionApplied: def.Condition,
		Message:          fmt.Sprintf("%s is now %s", target.Name, condName),
	}, nil
}
