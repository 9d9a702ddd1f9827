package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// chargeExecutor closes to the target and strikes in the same action
type chargeExecutor struct {
	service *service
}

func newChargeExecutor(svc *service) Executor {
	return &chargeExecutor{service: svc}
}

func (e *chargeExecutor) Key() string {
	return skills.ExecCharge
}

func (e *chargeExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	caster := in.Caster
	target := in.Target

	dest := adjacentCellToward(target.Position, caster.Position)
	if occupiedBy(in.Units, dest, caster.ID) != nil {
		return reject(RejectOutOfRange, fmt.Sprintf("no room to charge %s", target.Name)), nil
	}

	outcome, err := combat.ResolvePhysicalAttack(in.Roller, e.service.conditions, caster, target, def.DamageFlat)
	if err != nil {
		return nil, err
	}

	// The reposition commits with the attack, hit or miss
	caster.Position = dest
	result := &Result{NewPosition: &dest}

	if !outcome.Hit {
		result.Message = fmt.Sprintf("%s charges %s but the blow goes wide", caster.Name, target.Name)
		return result, nil
	}

	result.Damage = outcome.HPLost
	result.Message = fmt.Sprintf("%s charges %s for %d damage", caster.Name, target.Name, outcome.Damage)
	if outcome.Defeated {
		result.TargetsDefeated = []string{target.ID}
	}
	return result, nil
}

// adjacentCellToward picks the cell next to target on the side facing from
func adjacentCellToward(target, from combat.Position) combat.Position {
	return combat.Position{
		X: target.X + sign(from.X-target.X),
		Y: target.Y + sign(from.Y-target.Y),
	}
}

func occupiedBy(units map[string]*combat.Unit, pos combat.Position, exceptID string) *combat.Unit {
	for _, u := range units {
		if u.ID != exceptID && u.Alive && u.Position == pos {
			return u
		}
	}
	return nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
