package battle

import (
	"fmt"
	"math"
	"time"

	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/errors"
	"github.com/veyrin/skirmish/internal/services/skill"
)

// engine applies commands to one battle. It never locks: the owning runner
// serializes every call, which is what makes validate-then-mutate atomic.
type engine struct {
	battle     *combat.Battle
	roller     dice.Roller
	conditions *conditions.Catalog
	skills     skill.Service
}

func newEngine(b *combat.Battle, roller dice.Roller, condCatalog *conditions.Catalog, skillSvc skill.Service) *engine {
	return &engine{
		battle:     b,
		roller:     roller,
		conditions: condCatalog,
		skills:     skillSvc,
	}
}

// Apply runs one command to completion. Rejections come back as result
// values; errors are reserved for commands that should never have reached
// this battle (wrong party, ended battle, malformed input).
func (e *engine) Apply(cmd *Command) (*CommandResult, error) {
	b := e.battle

	if b.Ended() {
		return nil, errors.BattleEnded(fmt.Sprintf("battle %s has ended", b.ID))
	}

	// Concession is the one command open to the non-active party
	if cmd.Kind == CommandConcede {
		b.Concede(cmd.PartyID)
		return e.applied(nil), nil
	}

	if cmd.PartyID != b.ActivePartyID() {
		return nil, errors.PermissionDenied("it is not your turn")
	}
	if cmd.ActingUnitID != "" && !b.IsUnitTurn(cmd.ActingUnitID) {
		return nil, errors.PermissionDenied("that unit is not the active unit")
	}

	switch cmd.Kind {
	case CommandMove:
		return e.handleMove(cmd)
	case CommandBasicAttack:
		return e.handleBasicAttack(cmd)
	case CommandUseSkill:
		return e.handleUseSkill(cmd)
	case CommandEndTurn:
		b.EndTurn(e.conditions)
		return e.applied(nil), nil
	default:
		return nil, errors.InvalidArgumentf("unknown command kind %q", cmd.Kind)
	}
}

// ForceEndTurn is the timer-expiry path. It reuses the normal end-turn
// transition; there is no separate timeout branch.
func (e *engine) ForceEndTurn() *CommandResult {
	if e.battle.Ended() {
		return nil
	}

	if u := e.battle.ActiveUnit(); u != nil {
		e.battle.AddLogEntry(combat.LogEntry{
			Type:    combat.LogTypeTurn,
			Message: fmt.Sprintf("%s runs out of time", u.Name),
			ActorID: u.ID,
		})
	}
	e.battle.EndTurn(e.conditions)
	return e.applied(nil)
}

func (e *engine) handleMove(cmd *Command) (*CommandResult, error) {
	b := e.battle
	unit := b.ActiveUnit()

	if cmd.TargetPosition == nil {
		return rejected(RejectBadCommand, "", "move needs a target position"), nil
	}
	dest := *cmd.TargetPosition

	scan := conditions.ScanForAction(e.conditions, unit.Conditions, conditions.ActionMove)
	if !scan.CanPerform {
		return rejected(skill.RejectBlocked, scan.BlockedBy,
			fmt.Sprintf("%s prevents moving", scan.BlockedBy)), nil
	}

	cost := combat.ManhattanDistance(unit.Position, dest)
	if cost == 0 {
		return rejected(RejectBadCommand, "", "already standing there"), nil
	}

	allowance := int(math.Floor(float64(unit.MovesLeft+scan.Modifiers.MoveBonus) * scan.Modifiers.MoveMultiplier))
	if cost > allowance {
		return rejected(RejectNoMoves, "",
			fmt.Sprintf("not enough movement: need %d, have %d", cost, allowance)), nil
	}

	for _, other := range b.Units {
		if other.ID != unit.ID && other.Alive && other.Position == dest {
			return rejected(RejectOccupied, "", fmt.Sprintf("%s is standing there", other.Name)), nil
		}
	}

	unit.Position = dest
	unit.MovesLeft -= cost
	if unit.MovesLeft < 0 {
		unit.MovesLeft = 0
	}
	unit.Conditions = conditions.Remove(unit.Conditions, scan.ExpireNow)

	b.AddLogEntry(combat.LogEntry{
		Type:    combat.LogTypeMove,
		Message: fmt.Sprintf("%s moves to (%d,%d)", unit.Name, dest.X, dest.Y),
		ActorID: unit.ID,
		Value:   cost,
	})

	return e.commit(nil), nil
}

func (e *engine) handleBasicAttack(cmd *Command) (*CommandResult, error) {
	b := e.battle
	attacker := b.ActiveUnit()

	target, ok := b.Units[cmd.TargetUnitID]
	if !ok || !target.Alive {
		return rejected(skill.RejectNoTarget, "", "no such target"), nil
	}
	if target.OwnerID == attacker.OwnerID {
		return rejected(skill.RejectWrongTarget, "", "cannot attack your own unit"), nil
	}
	if combat.KingMoveDistance(attacker.Position, target.Position) > 1 {
		return rejected(skill.RejectOutOfRange, "", fmt.Sprintf("%s is out of reach", target.Name)), nil
	}

	scan := conditions.ScanForAction(e.conditions, attacker.Conditions, conditions.ActionAttack)
	if !scan.CanPerform {
		return rejected(skill.RejectBlocked, scan.BlockedBy,
			fmt.Sprintf("%s prevents attacking", scan.BlockedBy)), nil
	}

	// Spend a regular attack, or a reckless bonus attack. The bonus is an
	// explicit named exception: it only flows while both protection pools
	// are empty, and never generalizes past this check.
	bonusAttack := false
	if attacker.AttacksLeft <= 0 {
		if scan.Modifiers.ExtraAttacks > 0 && attacker.Unprotected() &&
			attacker.BonusAttacksUsed < scan.Modifiers.ExtraAttacks {
			bonusAttack = true
		} else {
			return rejected(RejectNoAttacks, "", "no attacks left this turn"), nil
		}
	}

	outcome, err := combat.ResolvePhysicalAttack(e.roller, e.conditions, attacker, target, 0)
	if err != nil {
		return nil, errors.Wrap(err, "resolving attack")
	}

	if bonusAttack {
		attacker.BonusAttacksUsed++
	} else {
		attacker.AttacksLeft--
	}
	attacker.Conditions = conditions.Remove(attacker.Conditions, scan.ExpireNow)

	if !outcome.Hit {
		b.AddLogEntry(combat.LogEntry{
			Type:     combat.LogTypeAttack,
			Message:  fmt.Sprintf("%s attacks %s and misses", attacker.Name, target.Name),
			ActorID:  attacker.ID,
			TargetID: target.ID,
		})
		return e.commit(nil), nil
	}

	b.AddLogEntry(combat.LogEntry{
		Type:     combat.LogTypeAttack,
		Message:  fmt.Sprintf("%s hits %s for %d damage", attacker.Name, target.Name, outcome.Damage),
		ActorID:  attacker.ID,
		TargetID: target.ID,
		Value:    outcome.Damage,
	})

	if outcome.Defeated {
		e.recordDeath(target)
	}

	return e.commit(nil), nil
}

func (e *engine) handleUseSkill(cmd *Command) (*CommandResult, error) {
	b := e.battle
	caster := b.ActiveUnit()

	var target *combat.Unit
	if cmd.TargetUnitID != "" {
		target = b.Units[cmd.TargetUnitID]
		if target == nil {
			return rejected(skill.RejectNoTarget, "", "no such target"), nil
		}
	}

	result, err := e.skills.UseSkill(&skill.UseSkillInput{
		Caster:         caster,
		Code:           cmd.SkillCode,
		Target:         target,
		TargetPosition: cmd.TargetPosition,
		Units:          b.Units,
		Roller:         e.roller,
	})
	if err != nil {
		return nil, err
	}
	if result.Rejected != nil {
		return &CommandResult{Rejection: result.Rejected, SkillResult: result}, nil
	}

	b.AddLogEntry(combat.LogEntry{
		Type:     combat.LogTypeSkill,
		Message:  result.Message,
		ActorID:  caster.ID,
		TargetID: cmd.TargetUnitID,
		Value:    result.Damage + result.Healing,
	})

	for _, id := range result.TargetsDefeated {
		if fallen := b.Units[id]; fallen != nil {
			e.recordDeath(fallen)
		}
	}

	return e.commit(result), nil
}

func (e *engine) recordDeath(fallen *combat.Unit) {
	e.battle.AddLogEntry(combat.LogEntry{
		Type:     combat.LogTypeDeath,
		Message:  fmt.Sprintf("%s falls", fallen.Name),
		TargetID: fallen.ID,
	})
	e.battle.CheckEnd()
}

// commit finalizes an applied move, attack or skill. A unit that has spent
// its whole turn economy yields the turn without waiting for an explicit
// end_turn.
func (e *engine) commit(skillResult *skill.Result) *CommandResult {
	b := e.battle
	if !b.Ended() {
		if u := b.ActiveUnit(); u != nil && !e.canContinueTurn(u) {
			b.EndTurn(e.conditions)
		}
	}
	return e.applied(skillResult)
}

// canContinueTurn reports whether the active unit still has anything to
// spend. Reckless bonus attacks keep the turn open while they remain.
func (e *engine) canContinueTurn(u *combat.Unit) bool {
	if u.CanActFurther() {
		return true
	}
	if !u.Alive || !u.Unprotected() {
		return false
	}
	scan := conditions.ScanForAction(e.conditions, u.Conditions, conditions.ActionAttack)
	return scan.CanPerform && u.BonusAttacksUsed < scan.Modifiers.ExtraAttacks
}

// applied stamps the battle and snapshots it for broadcast
func (e *engine) applied(skillResult *skill.Result) *CommandResult {
	e.battle.UpdatedAt = time.Now()
	return &CommandResult{
		Delta:       e.battle.Snapshot(),
		SkillResult: skillResult,
	}
}

func rejected(code skill.RejectCode, blockedBy, message string) *CommandResult {
	return &CommandResult{
		Rejection: &skill.Rejection{Code: code, BlockedBy: blockedBy, Message: message},
	}
}
