package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// fireballExecutor is an area magic burst. The blast does not discriminate:
// every living unit inside the radius defends, allies included.
type fireballExecutor struct {
	service *service
}

func newFireballExecutor(svc *service) Executor {
	return &fireballExecutor{service: svc}
}

func (e *fireballExecutor) Key() string {
	return skills.ExecFireball
}

func (e *fireballExecutor) Execute(in *UseSkillInput, def *skills.Definition) (*Result, error) {
	caster := in.Caster
	center := *in.TargetPosition

	var caught []*combat.Unit
	for _, u := range in.Units {
		if !u.Alive {
			continue
		}
		if combat.ManhattanDistance(center, u.Position) <= def.Radius {
			caught = append(caught, u)
		}
	}

	if len(caught) == 0 {
		return reject(RejectNoTarget, "the blast would catch nobody"), nil
	}

	result := &Result{}
	hits := 0
	for _, target := range caught {
		outcome, err := combat.ResolveMagicAttack(in.Roller, e.service.conditions, caster, target, def.DamageFlat)
		if err != nil {
			return nil, err
		}
		if !outcome.Hit {
			continue
		}
		hits++
		result.Damage += outcome.HPLost
		if outcome.Defeated {
			result.TargetsDefeated = append(result.TargetsDefeated, target.ID)
		}
	}

	result.Message = fmt.Sprintf("%s's fireball engulfs %d units, searing %d of them", caster.Name, len(caught), hits)
	return result, nil
}
