package battle

import (
	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/skills"
	"github.com/veyrin/skirmish/internal/services/skill"
)

// CommandKind names one inbound battle command
type CommandKind string

const (
	CommandMove        CommandKind = "move"
	CommandBasicAttack CommandKind = "basic_attack"
	CommandUseSkill    CommandKind = "use_skill"
	CommandEndTurn     CommandKind = "end_turn"
	CommandConcede     CommandKind = "concede"
)

// Command is one inbound action against a battle. Only the party holding the
// active unit may act; concede is the one exception.
type Command struct {
	BattleID     string      `json:"battle_id"`
	PartyID      string      `json:"party_id"`
	ActingUnitID string      `json:"acting_unit_id,omitempty"`
	Kind         CommandKind `json:"kind"`

	SkillCode      skills.Code      `json:"skill_code,omitempty"`
	TargetUnitID   string           `json:"target_unit_id,omitempty"`
	TargetPosition *combat.Position `json:"target_position,omitempty"`
}

// Rejection codes for battle commands outside the skill pipeline
const (
	RejectNoMoves    skill.RejectCode = "no_moves"
	RejectOccupied   skill.RejectCode = "occupied"
	RejectNoAttacks  skill.RejectCode = "no_attacks"
	RejectBadCommand skill.RejectCode = "bad_command"
)

// CommandResult is what a command produces: either a rejection explaining why
// nothing happened, or a delta snapshot of the battle after the mutation.
type CommandResult struct {
	Delta       *combat.Delta    `json:"delta,omitempty"`
	Rejection   *skill.Rejection `json:"rejection,omitempty"`
	SkillResult *skill.Result    `json:"skill_result,omitempty"`
}

// Applied reports whether the command mutated the battle
func (r *CommandResult) Applied() bool {
	return r != nil && r.Rejection == nil
}

// CreateBattleInput assembles one battle from externally built units
type CreateBattleInput struct {
	// Units arrive fully assembled: stats, features and starting gear are
	// someone else's job. Order matters for initiative tie-breaks.
	Units []*combat.Unit

	// Seed fixes the battle's dice stream; zero means roll the clock
	Seed int64

	TurnTimerSeconds int
}
