package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// guardStanceExecutor refills the caster's physical protection and raises
// the guarded stance until the turn ends.
type guardStanceExecutor struct {
	service *service
}

func newGuardStanceExecutor(svc *service) Executor {
	return &guardStanceExecutor{service: svc}
}

func (e *guardStanceExecutor) Key() string {
	return skills.ExecGuardStance
}

func (e *guardStanceExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	caster := in.Caster

	restored := caster.RestorePhysicalProtection(caster.PhysicalProtection.Max)
	caster.Conditions = conditions.Apply(e.service.conditions, caster.Conditions, def.Condition)

	return &Result{
		Healing:          restored,
		ConditionApplied: def.Condition,
		Message:          fmt.Sprintf("%s raises a guard, restoring %d protection", caster.Name, restored),
	}, nil
}
