package conditions

// ConditionID identifies a condition definition in the static catalog
type ConditionID string

// ExpiryPolicy controls when a condition leaves a unit
type ExpiryPolicy string

const (
	// ExpiryEndOfTurn removes the condition when its bearer's turn ends
	ExpiryEndOfTurn ExpiryPolicy = "end_of_turn"
	// ExpiryNextTurn removes the condition at the battle-wide round rollover
	ExpiryNextTurn ExpiryPolicy = "next_turn"
	// ExpiryOnAction removes the condition when its bearer commits any action
	ExpiryOnAction ExpiryPolicy = "on_action"
	// ExpiryManual is only removed by an explicit effect
	ExpiryManual ExpiryPolicy = "manual"
	// ExpiryPermanent is never removed
	ExpiryPermanent ExpiryPolicy = "permanent"
	// ExpiryDuration lasts a fixed number of rounds
	ExpiryDuration ExpiryPolicy = "duration"
	// ExpiryEndOfBattle is removed at battle teardown only
	ExpiryEndOfBattle ExpiryPolicy = "end_of_battle"
)

// ActionName names an intent checked against block flags
type ActionName string

const (
	ActionMove   ActionName = "move"
	ActionAttack ActionName = "attack"
	ActionSkill  ActionName = "skill"
	ActionDash   ActionName = "dash"
	ActionDodge  ActionName = "dodge"
)

// EffectKey names one entry in a definition's effects bag.
// Aggregation recognizes exactly these keys; anything else is ignored.
type EffectKey string

const (
	// Block flags. A non-zero value blocks the matching action.
	EffectBlockAll    EffectKey = "block_all"
	EffectBlockMove   EffectKey = "block_move"
	EffectBlockAttack EffectKey = "block_attack"
	EffectBlockSkill  EffectKey = "block_skill"
	EffectBlockDash   EffectKey = "block_dash"
	EffectBlockDodge  EffectKey = "block_dodge"

	// Chance modifiers, percent points, clamped to [0,100] after aggregation.
	EffectDodgeChance EffectKey = "dodge_chance"
	EffectCritChance  EffectKey = "crit_chance"
	EffectMissChance  EffectKey = "miss_chance"

	// Damage modifiers applied to outgoing damage.
	EffectFlatDamage    EffectKey = "flat_damage"
	EffectPercentDamage EffectKey = "percent_damage"

	// Attribute modifiers.
	EffectCombatMod     EffectKey = "combat_mod"
	EffectSpeedMod      EffectKey = "speed_mod"
	EffectFocusMod      EffectKey = "focus_mod"
	EffectResistanceMod EffectKey = "resistance_mod"
	EffectWillMod       EffectKey = "will_mod"
	EffectVitalityMod   EffectKey = "vitality_mod"
	EffectArmorMod      EffectKey = "armor_mod"

	// Movement. The bonus is additive; the multiplier is multiplicative.
	EffectMoveBonus      EffectKey = "move_bonus"
	EffectMoveMultiplier EffectKey = "move_multiplier"

	// Per-turn ticks applied when the bearer's turn begins.
	EffectDamagePerTurn EffectKey = "damage_per_turn"
	EffectHealPerTurn   EffectKey = "heal_per_turn"

	// Advantage shifts fed into the dice resolver.
	EffectAttackAdvantage  EffectKey = "attack_advantage"
	EffectDefenseAdvantage EffectKey = "defense_advantage"

	// Special flags.
	EffectTaunt        EffectKey = "taunt"
	EffectInvisible    EffectKey = "invisible"
	EffectFlying       EffectKey = "flying"
	EffectExtraAttacks EffectKey = "extra_attacks"
)

// Definition is one immutable catalog entry
type Definition struct {
	ID             ConditionID           `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Expiry         ExpiryPolicy          `json:"expiry"`
	DurationRounds int                   `json:"duration_rounds,omitempty"`
	Stackable      bool                  `json:"stackable,omitempty"`
	MaxStacks      int                   `json:"max_stacks,omitempty"`
	Effects        map[EffectKey]float64 `json:"effects"`
}

// Active is one condition instance held by a unit. Only duration-policy
// conditions carry per-instance state (rounds remaining); everything else is
// a bare reference into the catalog.
type Active struct {
	ID         ConditionID `json:"id"`
	RoundsLeft int         `json:"rounds_left,omitempty"`
}

// blockFor maps an action to its specific block flag
func blockFor(action ActionName) EffectKey {
	switch action {
	case ActionMove:
		return EffectBlockMove
	case ActionAttack:
		return EffectBlockAttack
	case ActionSkill:
		return EffectBlockSkill
	case ActionDash:
		return EffectBlockDash
	case ActionDodge:
		return EffectBlockDodge
	default:
		return EffectBlockAll
	}
}
