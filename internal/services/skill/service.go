package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
	"github.com/veyrin/skirmish/internal/errors"
)

// Service defines the skill pipeline interface
type Service interface {
	// UseSkill validates and executes one skill use. Validation failures come
	// back as Result.Rejected; errors are reserved for infrastructure faults.
	UseSkill(in *UseSkillInput) (*Result, error)

	// InstallPassives adds each known passive's permanent condition to the
	// unit. Run once at assembly; re-running is harmless.
	InstallPassives(unit *combat.Unit)
}

type service struct {
	skills     *skills.Catalog
	conditions *conditions.Catalog
	registry   *ExecutorRegistry
}

// ServiceConfig holds the static catalogs the service reads
type ServiceConfig struct {
	Skills     *skills.Catalog
	Conditions *conditions.Catalog
}

// NewService creates a skill service with the built-in executors registered
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.Skills == nil {
		return nil, errors.InvalidArgument("skill catalog is required")
	}
	if cfg.Conditions == nil {
		return nil, errors.InvalidArgument("condition catalog is required")
	}

	svc := &service{
		skills:     cfg.Skills,
		conditions: cfg.Conditions,
		registry:   NewExecutorRegistry(),
	}

	svc.registry.Register(newPowerStrikeExecutor(svc))
	svc.registry.Register(newCleaveExecutor(svc))
	svc.registry.Register(newChargeExecutor(svc))
	svc.registry.Register(newGuardStanceExecutor(svc))
	svc.registry.Register(newFireballExecutor(svc))
	svc.registry.Register(newFrostBoltExecutor(svc))
	svc.registry.Register(newMendWoundsExecutor(svc))
	svc.registry.Register(newApplyConditionExecutor(svc))

	return svc, nil
}

func (s *service) UseSkill(in *UseSkillInput) (*Result, error) {
	def := s.skills.Get(in.Code)
	if def == nil {
		return reject(RejectSkillUnknown, fmt.Sprintf("unknown skill %q", in.Code)), nil
	}

	if rej := Validate(in, def); rej != nil {
		return &Result{Skill: in.Code, Rejected: rej}, nil
	}

	scan := conditions.ScanForAction(s.conditions, in.Caster.Conditions, conditions.ActionSkill)
	if !scan.CanPerform {
		res := rejectBlocked(scan.BlockedBy, fmt.Sprintf("%s prevents using skills", scan.BlockedBy))
		res.Skill = in.Code
		return res, nil
	}

	// Melee skills are swung like attacks and share the attack gate
	if def.Range.Kind == skills.RangeMelee {
		attackScan := conditions.ScanForAction(s.conditions, in.Caster.Conditions, conditions.ActionAttack)
		if !attackScan.CanPerform {
			res := rejectBlocked(attackScan.BlockedBy, fmt.Sprintf("%s prevents attacking", attackScan.BlockedBy))
			res.Skill = in.Code
			return res, nil
		}
	}

	executor, ok := s.registry.Get(def.Executor)
	if !ok {
		return nil, errors.Internalf("skill %s names unregistered executor %q", def.Code, def.Executor)
	}

	result, err := executor.Execute(in, def)
	if err != nil {
		return nil, errors.Wrapf(err, "executing %s", def.Code)
	}
	result.Skill = def.Code

	if result.Rejected != nil {
		return result, nil
	}

	// Costs are the pipeline's job, never the executor's
	if def.ConsumesAction() {
		in.Caster.SpendAction()
	}
	in.Caster.SpendMana(def.ManaCost)
	in.Caster.SetCooldown(def.Code, def.Cooldown)
	in.Caster.Conditions = conditions.Remove(in.Caster.Conditions, scan.ExpireNow)

	return result, nil
}

func (s *service) InstallPassives(unit *combat.Unit) {
	for _, code := range unit.Features {
		def := s.skills.Get(code)
		if def == nil || def.Category != skills.CategoryPassive || def.Condition == "" {
			continue
		}
		unit.Conditions = conditions.Apply(s.conditions, unit.Conditions, def.Condition)
	}
}
