package skill

import (
	"fmt"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// Validate checks a skill use against the caster's state and the target
// geometry. It short-circuits on the first failure and never mutates anything.
// The returned rejection is nil when the use is legal.
func Validate(in *UseSkillInput, def *skills.Definition) *Rejection {
	caster := in.Caster

	if !def.IsActive() {
		return &Rejection{Code: RejectNotActive, Message: fmt.Sprintf("%s is not an activated skill", def.Name)}
	}
	if !caster.KnowsSkill(def.Code) {
		return &Rejection{Code: RejectNotKnown, Message: fmt.Sprintf("%s does not know %s", caster.Name, def.Name)}
	}
	if !caster.Alive {
		return &Rejection{Code: RejectCasterDead, Message: fmt.Sprintf("%s is down", caster.Name)}
	}
	if def.ConsumesAction() && caster.ActionsLeft <= 0 {
		return &Rejection{Code: RejectNoActions, Message: "no actions left this turn"}
	}
	if cd := caster.CooldownFor(def.Code); cd > 0 {
		return &Rejection{Code: RejectOnCooldown, Message: fmt.Sprintf("%s is on cooldown for %d more rounds", def.Name, cd)}
	}
	if caster.Mana.Current < def.ManaCost {
		return &Rejection{Code: RejectNoMana, Message: fmt.Sprintf("%s costs %d mana", def.Name, def.ManaCost)}
	}

	return validateTarget(in, def)
}

func validateTarget(in *UseSkillInput, def *skills.Definition) *Rejection {
	caster := in.Caster
	target := in.Target

	reach := def.Range.Resolve(caster.Stats.Value)

	switch def.Range.Kind {
	case skills.RangeSelf:
		if target != nil && target.ID != caster.ID {
			return &Rejection{Code: RejectWrongTarget, Message: fmt.Sprintf("%s can only be used on yourself", def.Name)}
		}
		return nil

	case skills.RangeMelee:
		if target == nil {
			return &Rejection{Code: RejectNoTarget, Message: fmt.Sprintf("%s needs a target", def.Name)}
		}
		if !target.Alive {
			return &Rejection{Code: RejectNoTarget, Message: fmt.Sprintf("%s is already down", target.Name)}
		}
		if target.ID != caster.ID && combat.KingMoveDistance(caster.Position, target.Position) > reach {
			return &Rejection{Code: RejectOutOfRange, Message: fmt.Sprintf("%s is out of reach", target.Name)}
		}
		return checkTargetType(caster, target, def)

	case skills.RangeRanged, skills.RangeArea:
		if def.TargetType == skills.TargetGround {
			if in.TargetPosition == nil {
				return &Rejection{Code: RejectNoTarget, Message: fmt.Sprintf("%s needs a target location", def.Name)}
			}
			if combat.ManhattanDistance(caster.Position, *in.TargetPosition) > reach {
				return &Rejection{Code: RejectOutOfRange, Message: "target location is out of range"}
			}
			return nil
		}

		if target == nil {
			return &Rejection{Code: RejectNoTarget, Message: fmt.Sprintf("%s needs a target", def.Name)}
		}
		if !target.Alive {
			return &Rejection{Code: RejectNoTarget, Message: fmt.Sprintf("%s is already down", target.Name)}
		}
		if target.ID == caster.ID && !selfTargetAllowed(def.TargetType) {
			return &Rejection{Code: RejectWrongTarget, Message: fmt.Sprintf("%s cannot target yourself", def.Name)}
		}
		if combat.ManhattanDistance(caster.Position, target.Position) > reach {
			return &Rejection{Code: RejectOutOfRange, Message: fmt.Sprintf("%s is out of range", target.Name)}
		}
		return checkTargetType(caster, target, def)

	default:
		return &Rejection{Code: RejectSkillUnknown, Message: fmt.Sprintf("%s has no usable range", def.Name)}
	}
}

// checkTargetType rejects ally-only skills aimed at enemies and enemy-only
// skills aimed at allies. Self-cast is exempt for ally skills.
func checkTargetType(caster, target *combat.Unit, def *skills.Definition) *Rejection {
	switch def.TargetType {
	case skills.TargetSelf:
		if target.ID != caster.ID {
			return &Rejection{Code: RejectWrongTarget, Message: fmt.Sprintf("%s can only be used on yourself", def.Name)}
		}
	case skills.TargetAlly:
		if target.OwnerID != caster.OwnerID {
			return &Rejection{Code: RejectWrongTarget, Message: fmt.Sprintf("%s only works on allies", def.Name)}
		}
	case skills.TargetEnemy:
		if target.OwnerID == caster.OwnerID {
			return &Rejection{Code: RejectWrongTarget, Message: fmt.Sprintf("%s only works on enemies", def.Name)}
		}
	}
	return nil
}

func selfTargetAllowed(tt skills.TargetType) bool {
	return tt == skills.TargetSelf || tt == skills.TargetAlly || tt == skills.TargetAny
}
