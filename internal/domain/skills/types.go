package skills

import (
	"github.com/veyrin/skirmish/internal/domain/conditions"
)

// Code identifies a skill definition in the static catalog
type Code string

// Category separates always-on features from activated skills
type Category string

const (
	CategoryPassive Category = "PASSIVE"
	CategoryActive  Category = "ACTIVE"
)

// RangeKind is the targeting shape of an active skill
type RangeKind string

const (
	RangeSelf   RangeKind = "SELF"
	RangeMelee  RangeKind = "MELEE"
	RangeRanged RangeKind = "RANGED"
	RangeArea   RangeKind = "AREA"
)

// TargetType constrains who a skill may be aimed at
type TargetType string

const (
	TargetSelf   TargetType = "self"
	TargetAlly   TargetType = "ally"
	TargetEnemy  TargetType = "enemy"
	TargetAny    TargetType = "any"
	TargetGround TargetType = "ground"
)

// Attribute names a unit stat a range can be derived from
type Attribute string

const (
	AttrCombat     Attribute = "combat"
	AttrSpeed      Attribute = "speed"
	AttrFocus      Attribute = "focus"
	AttrResistance Attribute = "resistance"
	AttrWill       Attribute = "will"
	AttrVitality   Attribute = "vitality"
)

// Tier is the cost band a skill sits in
type Tier string

const (
	TierMinor    Tier = "minor"
	TierStandard Tier = "standard"
	TierMajor    Tier = "major"
)

// Range resolves to a concrete distance: an explicit override beats an
// attribute binding, which beats the per-kind default table.
type Range struct {
	Kind      RangeKind `json:"kind"`
	Override  int       `json:"override,omitempty"`
	Attribute Attribute `json:"attribute,omitempty"`
}

var defaultRanges = map[RangeKind]int{
	RangeSelf:   0,
	RangeMelee:  1,
	RangeRanged: 4,
	RangeArea:   3,
}

// Resolve returns the concrete range given a stat lookup
func (r Range) Resolve(stat func(Attribute) int) int {
	if r.Override > 0 {
		return r.Override
	}
	if r.Attribute != "" && stat != nil {
		if v := stat(r.Attribute); v > 0 {
			return v
		}
	}
	return defaultRanges[r.Kind]
}

// Definition is one immutable skill catalog entry. Behavior is selected by
// looking up Executor in the registry, never by subclassing.
type Definition struct {
	Code        Code     `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	// Condition is the permanent condition a passive installs, or the
	// condition the shared apply_condition executor attaches.
	Condition conditions.ConditionID `json:"condition,omitempty"`

	CostTier   Tier       `json:"cost_tier,omitempty"`
	ManaCost   int        `json:"mana_cost,omitempty"`
	Range      Range      `json:"range"`
	Radius     int        `json:"radius,omitempty"`
	TargetType TargetType `json:"target_type,omitempty"`
	Executor   string     `json:"executor,omitempty"`

	// FreeAction marks skills that do not consume the action budget.
	FreeAction bool `json:"free_action,omitempty"`
	Cooldown   int  `json:"cooldown,omitempty"`

	// DamageFlat is the flat bonus fed into the damage formula.
	DamageFlat int `json:"damage_flat,omitempty"`
}

// ConsumesAction reports whether using the skill spends an action.
// Defaults to true.
func (d *Definition) ConsumesAction() bool {
	return !d.FreeAction
}

// IsActive reports whether the skill goes through the execution pipeline
func (d *Definition) IsActive() bool {
	return d.Category == CategoryActive
}
