package skill

import (
	"github.com/veyrin/skirmish/internal/dice"
	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/domain/conditions"
	"github.com/veyrin/skirmish/internal/domain/skills"
)

// RejectCode is a typed validation failure returned to the caller
type RejectCode string

const (
	RejectSkillUnknown RejectCode = "skill_unknown"
	RejectNotActive    RejectCode = "not_active"
	RejectNotKnown     RejectCode = "not_known"
	RejectCasterDead   RejectCode = "caster_dead"
	RejectNoActions    RejectCode = "no_actions"
	RejectOnCooldown   RejectCode = "on_cooldown"
	RejectNoMana       RejectCode = "no_mana"
	RejectNoTarget     RejectCode = "no_target"
	RejectOutOfRange   RejectCode = "out_of_range"
	RejectWrongTarget  RejectCode = "wrong_target"
	RejectBlocked      RejectCode = "blocked"
)

// Rejection explains why a command was not applied. It is a result value,
// never an error: rejected commands simply do nothing.
type Rejection struct {
	Code RejectCode `json:"code"`
	// BlockedBy names the blocking condition when Code is RejectBlocked
	BlockedBy string `json:"blocked_by,omitempty"`
	Message   string `json:"message"`
}

// UseSkillInput carries everything one skill use needs. The roller is
// per-battle so replays stay deterministic.
type UseSkillInput struct {
	Caster         *combat.Unit
	Code           skills.Code
	Target         *combat.Unit
	TargetPosition *combat.Position
	Units          map[string]*combat.Unit
	Roller         dice.Roller
}

// Result is the structured outcome of a skill use
type Result struct {
	Skill   skills.Code `json:"skill"`
	Message string      `json:"message"`

	Damage  int `json:"damage,omitempty"`
	Healing int `json:"healing,omitempty"`

	ConditionApplied conditions.ConditionID `json:"condition_applied,omitempty"`
	NewPosition      *combat.Position       `json:"new_position,omitempty"`
	TargetsDefeated  []string               `json:"targets_defeated,omitempty"`

	// Rejected is set instead of the fields above when validation failed
	Rejected *Rejection `json:"rejected,omitempty"`
}

// Applied reports whether the skill actually went through
func (r *Result) Applied() bool {
	return r != nil && r.Rejected == nil
}

func reject(code RejectCode, message string) *Result {
	return &Result{Rejected: &Rejection{Code: code, Message: message}}
}

func rejectBlocked(blockedBy, message string) *Result {
	return &Result{Rejected: &Rejection{Code: RejectBlocked, BlockedBy: blockedBy, Message: message}}
}
